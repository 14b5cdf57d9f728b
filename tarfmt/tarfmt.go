// Package tarfmt implements the ustar-compatible tar codec: a binary
// (de)serializer between a byte stream of 512-byte records and the member
// tree. The classic header layout plus the ustar extension fields
// (prefix/owner/group/magic) are supported; GNU sparse records are not and
// fail cleanly.
package tarfmt

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/meigma/arc/internal/arctype"
)

// Header type flags.
const (
	TypeRegular    = '0'
	TypeRegularOld = '\x00'
	TypeHardLink   = '1'
	TypeSymlink    = '2'
	TypeChar       = '3'
	TypeBlock      = '4'
	TypeDirectory  = '5'
	TypeFIFO       = '6'
	typeGNUSparse  = 'S'
)

const (
	blockSize = 512

	// Field widths of the 512-byte header record.
	lenName     = 100
	lenLinkName = 100
	lenPrefix   = 155
	lenOwner    = 32
	lenGroup    = 32

	// Field offsets.
	offName     = 0
	offMode     = 100
	offOwnerID  = 108
	offGroupID  = 116
	offSize     = 124
	offModTime  = 136
	offChecksum = 148
	offTypeFlag = 156
	offLinkName = 157
	offMagic    = 257
	offVersion  = 263
	offOwner    = 265
	offGroup    = 297
	offDevMajor = 329
	offDevMinor = 337
	offPrefix   = 345

	magic = "ustar\x00"
)

// Codec is the tar codec. The zero value is ready to use.
type Codec struct{}

// New returns a tar codec.
func New() *Codec { return &Codec{} }

// ReadOnly reports whether the codec refuses to encode. Tar supports both
// directions.
func (*Codec) ReadOnly() bool { return false }

// HasProperties reports whether the format defines archive-wide properties.
// Tar has none.
func (*Codec) HasProperties() bool { return false }

// cstring returns the field content up to the first NUL byte.
func cstring(field []byte) string {
	if i := bytes.IndexByte(field, 0); i >= 0 {
		field = field[:i]
	}
	return string(field)
}

// parseOctal parses a space/zero-padded octal ASCII field. An all-blank
// field parses as zero.
func parseOctal(field []byte) (int64, error) {
	s := string(bytes.Trim(field, " \x00"))
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(s, 8, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad octal field %q", arctype.ErrCorruptHeader, s)
	}
	return v, nil
}

// putOctal writes v as zero-padded octal ASCII with a trailing NUL.
// Negative values clamp to zero; values too wide for the field fail with
// ErrFieldTooLong rather than truncating.
func putOctal(field []byte, v int64) error {
	if v < 0 {
		v = 0
	}
	s := strconv.FormatInt(v, 8)
	if len(s) > len(field)-1 {
		return fmt.Errorf("%w: %d overflows %d octal digits", arctype.ErrFieldTooLong, v, len(field)-1)
	}
	pad := len(field) - 1 - len(s)
	for i := 0; i < pad; i++ {
		field[i] = '0'
	}
	copy(field[pad:], s)
	field[len(field)-1] = 0
	return nil
}

// checksums returns the unsigned and signed sums of a header block with the
// checksum field treated as eight ASCII spaces.
func checksums(block []byte) (unsigned int64, signed int64) {
	for i, b := range block {
		if i >= offChecksum && i < offChecksum+8 {
			b = ' '
		}
		unsigned += int64(b)
		signed += int64(int8(b))
	}
	return unsigned, signed
}

// isZeroBlock reports whether a 512-byte block is all zero.
func isZeroBlock(block []byte) bool {
	for _, b := range block {
		if b != 0 {
			return false
		}
	}
	return true
}
