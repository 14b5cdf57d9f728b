package arc

import (
	"iter"
	"log/slog"

	"github.com/meigma/arc/filter"
	"github.com/meigma/arc/internal/arctype"
	"github.com/meigma/arc/tree"
)

// Properties carries archive-wide metadata for formats that define any
// (zip: the archive comment). Formats without properties never allocate it.
type Properties = arctype.Properties

// Codec translates between a byte stream and the member tree. Concrete
// implementations live in the tarfmt and zipfmt packages.
type Codec interface {
	// Decode populates root (and props, when non-nil) from data.
	Decode(data []byte, root *tree.Directory, props *Properties) error

	// Encode serializes root (and props, when non-nil) to bytes.
	Encode(root *tree.Directory, props *Properties) ([]byte, error)

	// ReadOnly reports whether Encode is unsupported.
	ReadOnly() bool

	// HasProperties reports whether the format defines archive-wide
	// properties.
	HasProperties() bool
}

// Archive is the container facade: a member tree, a codec, an optional
// compression filter, and optional archive-wide properties.
type Archive struct {
	codec  Codec
	filter filter.Filter
	root   *tree.Directory
	props  *Properties
	logger *slog.Logger
}

// New creates an empty archive for the given codec.
func New(codec Codec, opts ...Option) *Archive {
	a := &Archive{
		codec: codec,
		root:  tree.NewRoot(),
	}
	if codec.HasProperties() {
		a.props = &Properties{}
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// log returns the logger, falling back to a discard logger if nil.
func (a *Archive) log() *slog.Logger {
	if a.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.logger
}

// Deserialize replaces the archive's contents with the decoded form of
// data. The optional filter runs first, then the codec populates a fresh
// tree; on error the archive is left unchanged.
func (a *Archive) Deserialize(data []byte) error {
	if a.filter != nil {
		raw, err := a.filter.Decompress(data)
		if err != nil {
			return err
		}
		data = raw
	}

	root := tree.NewRoot()
	var props *Properties
	if a.codec.HasProperties() {
		props = &Properties{}
	}
	if err := a.codec.Decode(data, root, props); err != nil {
		return err
	}

	a.root = root
	a.props = props
	a.log().Debug("archive deserialized",
		"bytes", len(data),
		"files", root.NumFiles(tree.UnboundedDepth),
		"directories", root.NumDirectories(tree.UnboundedDepth))
	return nil
}

// Serialize encodes the tree through the codec and the optional filter.
func (a *Archive) Serialize() ([]byte, error) {
	if a.codec.ReadOnly() {
		return nil, ErrReadOnly
	}
	data, err := a.codec.Encode(a.root, a.props)
	if err != nil {
		return nil, err
	}
	if a.filter != nil {
		if data, err = a.filter.Compress(data); err != nil {
			return nil, err
		}
	}
	a.log().Debug("archive serialized", "bytes", len(data))
	return data, nil
}

// Root returns the tree's root directory for direct navigation.
func (a *Archive) Root() *tree.Directory { return a.root }

// AddFile inserts a file, creating missing intermediate directories.
func (a *Archive) AddFile(f *tree.File) error { return a.root.AddFile(f) }

// AddDirectory resolves or creates a directory; idempotent.
func (a *Archive) AddDirectory(path string) (*tree.Directory, error) {
	return a.root.AddDirectory(path)
}

// GetFile resolves a file by path; absence is reported via ok.
func (a *Archive) GetFile(path string) (*tree.File, bool) { return a.root.GetFile(path) }

// GetDirectory resolves a directory by path; absence is reported via ok.
func (a *Archive) GetDirectory(path string) (*tree.Directory, bool) {
	return a.root.GetDirectory(path)
}

// RemoveFile removes a file, reporting whether it existed.
func (a *Archive) RemoveFile(path string) bool { return a.root.RemoveFile(path) }

// RemoveDirectory removes a directory and its subtree, reporting whether
// it existed.
func (a *Archive) RemoveDirectory(path string) bool { return a.root.RemoveDirectory(path) }

// RemoveEmptyDirectories prunes every directory holding no files at any
// depth.
func (a *Archive) RemoveEmptyDirectories() { a.root.RemoveEmptyDirectories() }

// NumFiles counts files to the given depth; tree.UnboundedDepth covers the
// whole archive.
func (a *Archive) NumFiles(depth int) int { return a.root.NumFiles(depth) }

// NumDirectories counts directories, including the root, to the given
// depth.
func (a *Archive) NumDirectories(depth int) int { return a.root.NumDirectories(depth) }

// NumMembers counts files and directories, including the root, to the
// given depth.
func (a *Archive) NumMembers(depth int) int { return a.root.NumMembers(depth) }

// Files iterates every file in the archive.
func (a *Archive) Files() iter.Seq[*tree.File] { return a.root.Files() }

// Directories iterates every directory in the archive, root first.
func (a *Archive) Directories() iter.Seq[*tree.Directory] { return a.root.Directories() }

// Members iterates every member in the archive, excluding the root.
func (a *Archive) Members() iter.Seq[tree.Member] { return a.root.Members() }

// Comment returns the archive comment. ErrNoProperties is returned for
// formats without archive-wide properties.
func (a *Archive) Comment() (string, error) {
	if a.props == nil {
		return "", ErrNoProperties
	}
	return a.props.Comment, nil
}

// SetComment sets the archive comment. ErrNoProperties is returned for
// formats without archive-wide properties; length is validated at encode
// time.
func (a *Archive) SetComment(comment string) error {
	if a.props == nil {
		return ErrNoProperties
	}
	a.props.Comment = comment
	return nil
}
