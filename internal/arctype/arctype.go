// Package arctype holds types and sentinel errors shared by the codec
// packages and the root arc package. The root package re-exports everything
// here that belongs to the public API.
package arctype

import "errors"

// Sentinel errors.
var (
	// ErrPathConflict is returned when an insertion hits an existing member
	// of the opposite kind at the same path.
	ErrPathConflict = errors.New("arc: path conflict")

	// ErrInvalidPath is returned for paths with a leading slash or empty
	// segments.
	ErrInvalidPath = errors.New("arc: invalid path")

	// ErrPathTooLong is returned when a tar path cannot be split into the
	// 155-byte prefix and 100-byte name fields.
	ErrPathTooLong = errors.New("arc: path too long")

	// ErrFieldTooLong is returned when a numeric value does not fit its
	// fixed-width tar header field.
	ErrFieldTooLong = errors.New("arc: header field too long")

	// ErrChecksumMismatch is returned when a tar header checksum fails both
	// unsigned and signed verification.
	ErrChecksumMismatch = errors.New("arc: header checksum mismatch")

	// ErrCorruptHeader is returned for malformed binary structures.
	ErrCorruptHeader = errors.New("arc: corrupt header")

	// ErrUnexpectedEOF is returned when a structure is truncated.
	ErrUnexpectedEOF = errors.New("arc: unexpected end of data")

	// ErrMultiDisk is returned when a zip archive spans multiple disks.
	ErrMultiDisk = errors.New("arc: multi-disk zip not supported")

	// ErrCorruptDirectory is returned when zip central-directory parsing
	// does not consume the declared byte range.
	ErrCorruptDirectory = errors.New("arc: corrupt central directory")

	// ErrUnsupportedMethod is returned for zip compression methods other
	// than store and deflate.
	ErrUnsupportedMethod = errors.New("arc: unsupported compression method")

	// ErrCommentTooLong is returned when a zip archive comment exceeds
	// 65535 bytes.
	ErrCommentTooLong = errors.New("arc: comment too long")

	// ErrEncryptionUnsupported is returned for encrypted zip entries.
	ErrEncryptionUnsupported = errors.New("arc: encrypted zip entries not supported")

	// ErrZip64Unsupported is returned when an archive requires zip64
	// structures to represent.
	ErrZip64Unsupported = errors.New("arc: zip64 not supported")

	// ErrSparseUnsupported is returned for GNU sparse tar entries.
	ErrSparseUnsupported = errors.New("arc: sparse tar entries not supported")

	// ErrReadOnly is returned when serializing through a read-only codec.
	ErrReadOnly = errors.New("arc: codec is read-only")

	// ErrNoProperties is returned by comment accessors when the archive
	// format defines no archive-wide properties.
	ErrNoProperties = errors.New("arc: format has no archive properties")
)

// Properties carries archive-wide metadata for formats that define any.
// Only zip does today: the end-of-central-directory comment.
type Properties struct {
	Comment string
}
