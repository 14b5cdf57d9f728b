package tree

import (
	"hash/crc32"
	"time"
)

// Compression methods recorded on zip members. Values follow the PKZIP
// method identifiers.
const (
	MethodStore   uint16 = 0
	MethodDeflate uint16 = 8
)

// TarAttrs carries the tar-specific metadata of a member. The zero value is
// usable; the codec fills these on decode and reads them on encode.
type TarAttrs struct {
	// Mode holds the unix permission bits.
	Mode int64

	// OwnerID and GroupID are the numeric owner fields.
	OwnerID int64
	GroupID int64

	// TypeFlag is the header type flag ('0' regular, '1' hardlink,
	// '2' symlink, '3'/'4' device, '6' fifo). Files only.
	TypeFlag byte

	// LinkName is the hardlink or symlink target. Files only.
	LinkName string

	// Owner and Group are the ustar owner/group name strings.
	Owner string
	Group string

	// DevMajor and DevMinor are the device numbers for device entries.
	DevMajor int64
	DevMinor int64
}

// ZipAttrs carries the zip-specific metadata of a file member.
type ZipAttrs struct {
	// Method is the compression method (MethodStore or MethodDeflate).
	Method uint16

	// Flags is the general-purpose bit flag word.
	Flags uint16

	// Extra holds the raw extra field bytes.
	Extra []byte

	// Comment is the per-entry comment.
	Comment string

	// InternalAttr and ExternalAttr are the central-directory attribute
	// words.
	InternalAttr uint16
	ExternalAttr uint32
}

// File is a leaf member holding an immutable payload plus format-specific
// metadata. The payload and its zip-compressed form are cached
// independently; assigning a new payload drops the compressed cache and
// recomputes the CRC32 immediately.
type File struct {
	path string
	data []byte

	crc        uint32
	compressed []byte

	// ModTime is the modification time, shared by both codecs.
	ModTime time.Time

	Tar TarAttrs
	Zip ZipAttrs
}

// NewFile creates a detached file member with the given path and payload.
// Defaults: mode 0644, regular tar type, deflate zip method, current time
// truncated to seconds.
func NewFile(path string, data []byte) *File {
	return &File{
		path:    path,
		data:    data,
		crc:     crc32.ChecksumIEEE(data),
		ModTime: time.Now().Truncate(time.Second),
		Tar:     TarAttrs{Mode: 0o644, TypeFlag: '0'},
		Zip:     ZipAttrs{Method: MethodDeflate},
	}
}

// Path implements Member.
func (f *File) Path() string { return f.path }

// Name implements Member.
func (f *File) Name() string { return baseName(f.path) }

// IsDir implements Member.
func (f *File) IsDir() bool { return false }

// Data returns the payload. Callers must not mutate the returned slice.
func (f *File) Data() []byte { return f.data }

// Size returns the payload length in bytes.
func (f *File) Size() int { return len(f.data) }

// SetData replaces the payload, recomputes the CRC32, and invalidates any
// cached compressed bytes.
func (f *File) SetData(data []byte) {
	f.data = data
	f.crc = crc32.ChecksumIEEE(data)
	f.compressed = nil
}

// SetPath renames the file. Only valid while the file is detached from a
// tree; renaming an attached member leaves the tree inconsistent.
func (f *File) SetPath(path string) { f.path = path }

// CRC32 returns the IEEE CRC32 of the payload, computed when the payload
// was assigned.
func (f *File) CRC32() uint32 { return f.crc }

// Compressed returns the cached zip-compressed bytes, if any.
func (f *File) Compressed() ([]byte, bool) {
	if f.compressed == nil {
		return nil, false
	}
	return f.compressed, true
}

// SetCompressed caches the zip-compressed form of the current payload.
func (f *File) SetCompressed(data []byte) { f.compressed = data }

// Clone returns a detached copy of the file sharing the payload bytes.
func (f *File) Clone() *File {
	c := *f
	return &c
}
