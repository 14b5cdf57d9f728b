// Package zipfmt implements the PKZIP zip codec: local file records
// followed by a central directory and a single end-of-central-directory
// record. Store and deflate entries are supported; zip64, encryption, and
// multi-disk archives fail cleanly.
//
// Entry payloads use raw deflate framing (no zlib header/trailer), as the
// zip format requires. CRC32 values are the ones cached on the tree
// members, computed when their payloads were assigned.
package zipfmt

import (
	"time"
)

const (
	sigLocal   = 0x04034b50
	sigCentral = 0x02014b50
	sigEOCD    = 0x06054b50

	localHeaderLen   = 30
	centralHeaderLen = 46
	eocdLen          = 22

	maxComment = 0xFFFF
	maxUint16  = 0xFFFF
	maxUint32  = 0xFFFFFFFF

	// Version 2.0: deflate plus directory entries.
	zipVersion = 20

	// MS-DOS directory attribute bit, set on encoded directory entries.
	msdosDir = 0x10
)

// Codec is the zip codec. The zero value is ready to use.
type Codec struct{}

// New returns a zip codec.
func New() *Codec { return &Codec{} }

// ReadOnly reports whether the codec refuses to encode. Zip supports both
// directions.
func (*Codec) ReadOnly() bool { return false }

// HasProperties reports whether the format defines archive-wide properties.
// Zip carries the archive comment.
func (*Codec) HasProperties() bool { return true }

// toDOSTime converts a time to the MS-DOS date and time words used by zip
// headers. Resolution is two seconds; times before the 1980 DOS epoch
// encode as zero.
func toDOSTime(t time.Time) (date, tm uint16) {
	t = t.UTC()
	if t.Year() < 1980 {
		return 0, 0
	}
	date = uint16((t.Year()-1980)<<9 | int(t.Month())<<5 | t.Day())
	tm = uint16(t.Hour()<<11 | t.Minute()<<5 | t.Second()/2)
	return date, tm
}

// fromDOSTime converts MS-DOS date and time words back to a time.
func fromDOSTime(date, tm uint16) time.Time {
	if date == 0 && tm == 0 {
		return time.Time{}
	}
	return time.Date(
		1980+int(date>>9),
		time.Month(date>>5&0xF),
		int(date&0x1F),
		int(tm>>11),
		int(tm>>5&0x3F),
		int(tm&0x1F)*2,
		0,
		time.UTC,
	)
}
