package arc

import "github.com/meigma/arc/internal/arctype"

// Sentinel errors re-exported from internal/arctype. All are fatal to the
// operation that raised them; nothing is retried internally, and decode
// errors abort the entire Deserialize call with no partial recovery.
// Lookup and removal operations report absence via their boolean results,
// never via errors.
var (
	// ErrPathConflict is returned when an insertion hits an existing member
	// of the opposite kind at the same path.
	ErrPathConflict = arctype.ErrPathConflict

	// ErrInvalidPath is returned for paths with a leading slash or empty
	// segments.
	ErrInvalidPath = arctype.ErrInvalidPath

	// ErrPathTooLong is returned when a tar path cannot be split into the
	// 155-byte prefix and 100-byte name fields.
	ErrPathTooLong = arctype.ErrPathTooLong

	// ErrFieldTooLong is returned when a numeric value does not fit its
	// fixed-width tar header field.
	ErrFieldTooLong = arctype.ErrFieldTooLong

	// ErrChecksumMismatch is returned when a tar header checksum fails both
	// unsigned and signed verification.
	ErrChecksumMismatch = arctype.ErrChecksumMismatch

	// ErrCorruptHeader is returned for malformed binary structures.
	ErrCorruptHeader = arctype.ErrCorruptHeader

	// ErrUnexpectedEOF is returned when a structure is truncated.
	ErrUnexpectedEOF = arctype.ErrUnexpectedEOF

	// ErrMultiDisk is returned when a zip archive spans multiple disks.
	ErrMultiDisk = arctype.ErrMultiDisk

	// ErrCorruptDirectory is returned when zip central-directory parsing
	// does not consume the declared byte range.
	ErrCorruptDirectory = arctype.ErrCorruptDirectory

	// ErrUnsupportedMethod is returned for zip compression methods other
	// than store and deflate.
	ErrUnsupportedMethod = arctype.ErrUnsupportedMethod

	// ErrCommentTooLong is returned when a zip archive comment exceeds
	// 65535 bytes.
	ErrCommentTooLong = arctype.ErrCommentTooLong

	// ErrEncryptionUnsupported is returned for encrypted zip entries.
	ErrEncryptionUnsupported = arctype.ErrEncryptionUnsupported

	// ErrZip64Unsupported is returned when an archive requires zip64
	// structures.
	ErrZip64Unsupported = arctype.ErrZip64Unsupported

	// ErrSparseUnsupported is returned for GNU sparse tar entries.
	ErrSparseUnsupported = arctype.ErrSparseUnsupported

	// ErrReadOnly is returned when serializing through a read-only codec.
	ErrReadOnly = arctype.ErrReadOnly

	// ErrNoProperties is returned by comment accessors when the format
	// defines no archive-wide properties.
	ErrNoProperties = arctype.ErrNoProperties
)
