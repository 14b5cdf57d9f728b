// Package tree implements the format-agnostic member tree backing an
// archive: a hierarchical namespace of files and directories with
// collision-checked insertion, subtree removal, empty-directory pruning,
// depth-bounded counts, and ordered enumerations.
//
// Paths are slash-separated with no leading slash and no empty segments.
// The root directory has the empty path, always exists, and cannot be
// removed. Mutating a member's path while it is attached to a tree is
// disallowed by contract: detach it, rename it, re-add it.
package tree

import (
	"strings"

	"github.com/meigma/arc/internal/arctype"
)

// Sentinel errors re-exported from internal/arctype.
var (
	// ErrPathConflict is returned when an insertion hits an existing member
	// of the opposite kind at the same path.
	ErrPathConflict = arctype.ErrPathConflict

	// ErrInvalidPath is returned for paths with a leading slash or empty
	// segments.
	ErrInvalidPath = arctype.ErrInvalidPath
)

// Member is a file or directory node in the archive's tree.
type Member interface {
	// Path returns the slash-separated path from the root. The root's path
	// is empty.
	Path() string

	// Name returns the final path segment.
	Name() string

	// IsDir reports whether the member is a directory.
	IsDir() bool
}

// UnboundedDepth makes the counting operations cover the whole subtree.
const UnboundedDepth = -1

// splitPath normalizes a path into its segments. A single trailing slash
// is tolerated; the empty path yields no segments.
func splitPath(path string) ([]string, error) {
	path = strings.TrimSuffix(path, "/")
	if path == "" {
		return nil, nil
	}
	segs := strings.Split(path, "/")
	for _, seg := range segs {
		if seg == "" {
			return nil, ErrInvalidPath
		}
	}
	return segs, nil
}

// joinUnder builds a child path below a directory path.
func joinUnder(dirPath, name string) string {
	if dirPath == "" {
		return name
	}
	return dirPath + "/" + name
}

// baseName returns the final segment of a path.
func baseName(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}
