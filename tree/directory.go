package tree

import (
	"iter"
	"maps"
	"slices"
	"time"
)

// Directory is an interior member owning child files and directories, keyed
// by their final path segment. A name is never present in both maps at
// once, and every child's path equals the parent path joined with its key.
type Directory struct {
	path  string
	files map[string]*File
	dirs  map[string]*Directory

	// ModTime is the modification time, shared by both codecs.
	ModTime time.Time

	// Tar holds the tar-specific metadata. Zip records nothing for
	// directories beyond their presence in the tree.
	Tar TarAttrs
}

// NewRoot creates an empty tree: a directory with the empty path.
func NewRoot() *Directory {
	return newDirectory("")
}

func newDirectory(path string) *Directory {
	return &Directory{
		path:    path,
		files:   make(map[string]*File),
		dirs:    make(map[string]*Directory),
		ModTime: time.Now().Truncate(time.Second),
		Tar:     TarAttrs{Mode: 0o755},
	}
}

// Path implements Member.
func (d *Directory) Path() string { return d.path }

// Name implements Member.
func (d *Directory) Name() string { return baseName(d.path) }

// IsDir implements Member.
func (d *Directory) IsDir() bool { return true }

// descend resolves or creates the chain of intermediate directories for the
// given segments, returning the directory that will hold the final segment.
func (d *Directory) descend(segs []string) (*Directory, error) {
	dir := d
	for _, seg := range segs {
		if _, ok := dir.files[seg]; ok {
			return nil, ErrPathConflict
		}
		sub, ok := dir.dirs[seg]
		if !ok {
			sub = newDirectory(joinUnder(dir.path, seg))
			dir.dirs[seg] = sub
		}
		dir = sub
	}
	return dir, nil
}

// AddFile inserts f under its path, creating missing intermediate
// directories. The file's stored path is rewritten to the full path below
// the receiver. ErrPathConflict is returned when an intermediate segment
// names an existing file or the leaf segment names an existing directory.
func (d *Directory) AddFile(f *File) error {
	segs, err := splitPath(f.path)
	if err != nil {
		return err
	}
	if len(segs) == 0 {
		return ErrInvalidPath
	}
	dir, err := d.descend(segs[:len(segs)-1])
	if err != nil {
		return err
	}
	name := segs[len(segs)-1]
	if _, ok := dir.dirs[name]; ok {
		return ErrPathConflict
	}
	f.path = joinUnder(dir.path, name)
	dir.files[name] = f
	return nil
}

// AddDirectory resolves or creates the directory at path, creating missing
// ancestors. Idempotent: an existing directory is returned unchanged, its
// children untouched. The empty path resolves to the receiver.
func (d *Directory) AddDirectory(path string) (*Directory, error) {
	segs, err := splitPath(path)
	if err != nil {
		return nil, err
	}
	return d.descend(segs)
}

// resolve walks segments without creating anything. The final directory and
// leaf name are returned; ok is false when any intermediate segment is
// missing or names a file.
func (d *Directory) resolve(path string) (parent *Directory, name string, ok bool) {
	segs, err := splitPath(path)
	if err != nil || len(segs) == 0 {
		return nil, "", false
	}
	dir := d
	for _, seg := range segs[:len(segs)-1] {
		sub, found := dir.dirs[seg]
		if !found {
			return nil, "", false
		}
		dir = sub
	}
	return dir, segs[len(segs)-1], true
}

// GetFile resolves a file by path. Absence is reported via ok, never an
// error. A trailing slash is stripped before resolution.
func (d *Directory) GetFile(path string) (*File, bool) {
	parent, name, ok := d.resolve(path)
	if !ok {
		return nil, false
	}
	f, ok := parent.files[name]
	return f, ok
}

// GetDirectory resolves a directory by path. The empty path resolves to the
// receiver. Absence is reported via ok, never an error.
func (d *Directory) GetDirectory(path string) (*Directory, bool) {
	segs, err := splitPath(path)
	if err != nil {
		return nil, false
	}
	dir := d
	for _, seg := range segs {
		sub, ok := dir.dirs[seg]
		if !ok {
			return nil, false
		}
		dir = sub
	}
	return dir, true
}

// RemoveFile removes the named leaf entry and reports whether it existed.
func (d *Directory) RemoveFile(path string) bool {
	parent, name, ok := d.resolve(path)
	if !ok {
		return false
	}
	if _, ok := parent.files[name]; !ok {
		return false
	}
	delete(parent.files, name)
	return true
}

// RemoveDirectory removes the named directory and its entire subtree,
// reporting whether it existed. The root cannot be removed: the empty path
// is a no-op returning false.
func (d *Directory) RemoveDirectory(path string) bool {
	parent, name, ok := d.resolve(path)
	if !ok {
		return false
	}
	if _, ok := parent.dirs[name]; !ok {
		return false
	}
	delete(parent.dirs, name)
	return true
}

// RemoveEmptyDirectories prunes, bottom-up, every directory holding zero
// files at any depth beneath it. A directory containing only other empty
// directories is itself pruned.
func (d *Directory) RemoveEmptyDirectories() {
	d.pruneEmpty()
}

// pruneEmpty returns the number of files retained at or below d after
// pruning its empty child directories.
func (d *Directory) pruneEmpty() int {
	n := len(d.files)
	for name, sub := range d.dirs {
		kept := sub.pruneEmpty()
		if kept == 0 {
			delete(d.dirs, name)
			continue
		}
		n += kept
	}
	return n
}

// NumFiles counts files up to depth levels below the receiver; direct
// children are level 0. Pass UnboundedDepth for the whole subtree.
func (d *Directory) NumFiles(depth int) int {
	n := len(d.files)
	if depth == 0 {
		return n
	}
	next := depth - 1
	if depth < 0 {
		next = UnboundedDepth
	}
	for _, sub := range d.dirs {
		n += sub.NumFiles(next)
	}
	return n
}

// NumDirectories counts directories up to depth levels below the receiver,
// including the receiver itself; direct children are level 0. Pass
// UnboundedDepth for the whole subtree.
func (d *Directory) NumDirectories(depth int) int {
	n := 1
	if depth == 0 {
		return n + len(d.dirs)
	}
	next := depth - 1
	if depth < 0 {
		next = UnboundedDepth
	}
	for _, sub := range d.dirs {
		n += sub.NumDirectories(next)
	}
	return n
}

// NumMembers counts files and directories up to depth levels below the
// receiver, including the receiver itself.
func (d *Directory) NumMembers(depth int) int {
	return d.NumFiles(depth) + d.NumDirectories(depth)
}

// sortedDirs returns the child directory names in sorted order.
func (d *Directory) sortedDirs() []string {
	return slices.Sorted(maps.Keys(d.dirs))
}

// sortedFiles returns the child file names in sorted order.
func (d *Directory) sortedFiles() []string {
	return slices.Sorted(maps.Keys(d.files))
}

// ChildFiles returns an iterator over the receiver's direct files in name
// order.
func (d *Directory) ChildFiles() iter.Seq[*File] {
	return func(yield func(*File) bool) {
		for _, name := range d.sortedFiles() {
			if !yield(d.files[name]) {
				return
			}
		}
	}
}

// ChildDirectories returns an iterator over the receiver's direct child
// directories in name order.
func (d *Directory) ChildDirectories() iter.Seq[*Directory] {
	return func(yield func(*Directory) bool) {
		for _, name := range d.sortedDirs() {
			if !yield(d.dirs[name]) {
				return
			}
		}
	}
}

// Files returns an iterator over every file in the subtree. Child
// directories are exhausted, in name order, before the receiver's own
// files are yielded. Each call returns a fresh iterator over the live
// tree; mutating the tree mid-iteration is unspecified.
func (d *Directory) Files() iter.Seq[*File] {
	return func(yield func(*File) bool) {
		d.yieldFiles(yield)
	}
}

func (d *Directory) yieldFiles(yield func(*File) bool) bool {
	for _, name := range d.sortedDirs() {
		if !d.dirs[name].yieldFiles(yield) {
			return false
		}
	}
	for _, name := range d.sortedFiles() {
		if !yield(d.files[name]) {
			return false
		}
	}
	return true
}

// Directories returns an iterator over every directory in the subtree,
// including the receiver. Each directory is yielded before its children.
func (d *Directory) Directories() iter.Seq[*Directory] {
	return func(yield func(*Directory) bool) {
		d.yieldDirs(yield)
	}
}

func (d *Directory) yieldDirs(yield func(*Directory) bool) bool {
	if !yield(d) {
		return false
	}
	for _, name := range d.sortedDirs() {
		if !d.dirs[name].yieldDirs(yield) {
			return false
		}
	}
	return true
}

// Members returns an iterator over every member in the subtree, excluding
// the receiver: each child directory is yielded followed by its own
// members, and the receiver's files come after all child directories are
// exhausted.
func (d *Directory) Members() iter.Seq[Member] {
	return func(yield func(Member) bool) {
		d.yieldMembers(yield)
	}
}

func (d *Directory) yieldMembers(yield func(Member) bool) bool {
	for _, name := range d.sortedDirs() {
		sub := d.dirs[name]
		if !yield(sub) {
			return false
		}
		if !sub.yieldMembers(yield) {
			return false
		}
	}
	for _, name := range d.sortedFiles() {
		if !yield(d.files[name]) {
			return false
		}
	}
	return true
}
