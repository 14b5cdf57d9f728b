package tree

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddFileCreatesAncestors(t *testing.T) {
	t.Parallel()

	root := NewRoot()
	require.NoError(t, root.AddFile(NewFile("a/b/c.txt", []byte("payload"))))

	f, ok := root.GetFile("a/b/c.txt")
	require.True(t, ok)
	assert.Equal(t, "a/b/c.txt", f.Path())
	assert.Equal(t, "c.txt", f.Name())
	assert.Equal(t, []byte("payload"), f.Data())

	d, ok := root.GetDirectory("a/b")
	require.True(t, ok)
	assert.Equal(t, "a/b", d.Path())
	assert.Equal(t, "b", d.Name())
}

func TestAddFileConflicts(t *testing.T) {
	t.Parallel()

	root := NewRoot()
	require.NoError(t, root.AddFile(NewFile("a", nil)))

	// Intermediate segment names an existing file.
	err := root.AddFile(NewFile("a/b.txt", nil))
	require.ErrorIs(t, err, ErrPathConflict)

	// Leaf segment names an existing directory.
	_, err = root.AddDirectory("d")
	require.NoError(t, err)
	err = root.AddFile(NewFile("d", nil))
	require.ErrorIs(t, err, ErrPathConflict)

	// Symmetric case for AddDirectory.
	_, err = root.AddDirectory("a")
	require.ErrorIs(t, err, ErrPathConflict)
	_, err = root.AddDirectory("a/sub")
	require.ErrorIs(t, err, ErrPathConflict)
}

func TestAddDirectoryIdempotent(t *testing.T) {
	t.Parallel()

	root := NewRoot()
	d1, err := root.AddDirectory("x")
	require.NoError(t, err)
	require.NoError(t, root.AddFile(NewFile("x/f.txt", nil)))

	d2, err := root.AddDirectory("x")
	require.NoError(t, err)
	assert.Same(t, d1, d2)

	_, ok := root.GetFile("x/f.txt")
	assert.True(t, ok, "re-adding a directory must not replace its children")
}

func TestAddDirectoryTrailingSlash(t *testing.T) {
	t.Parallel()

	root := NewRoot()
	_, err := root.AddDirectory("a/b/")
	require.NoError(t, err)

	_, ok := root.GetDirectory("a/b")
	assert.True(t, ok)
	_, ok = root.GetDirectory("a/b/")
	assert.True(t, ok)
}

func TestGetAbsence(t *testing.T) {
	t.Parallel()

	root := NewRoot()
	require.NoError(t, root.AddFile(NewFile("a/f.txt", nil)))

	_, ok := root.GetFile("missing")
	assert.False(t, ok)
	_, ok = root.GetFile("a")
	assert.False(t, ok, "directory resolved as file")
	_, ok = root.GetDirectory("a/f.txt")
	assert.False(t, ok, "file resolved as directory")
	_, ok = root.GetFile("a/f.txt/deeper")
	assert.False(t, ok)

	// Empty path resolves to the receiver for GetDirectory.
	d, ok := root.GetDirectory("")
	require.True(t, ok)
	assert.Same(t, root, d)
}

func TestInvalidPaths(t *testing.T) {
	t.Parallel()

	root := NewRoot()
	assert.ErrorIs(t, root.AddFile(NewFile("/abs", nil)), ErrInvalidPath)
	assert.ErrorIs(t, root.AddFile(NewFile("a//b", nil)), ErrInvalidPath)
	assert.ErrorIs(t, root.AddFile(NewFile("", nil)), ErrInvalidPath)
	_, err := root.AddDirectory("a//b")
	assert.ErrorIs(t, err, ErrInvalidPath)

	// Lookups never error; invalid paths are simply absent.
	_, ok := root.GetFile("a//b")
	assert.False(t, ok)
	assert.False(t, root.RemoveFile("a//b"))
}

func TestRemoveFile(t *testing.T) {
	t.Parallel()

	root := NewRoot()
	require.NoError(t, root.AddFile(NewFile("a/f.txt", nil)))

	assert.True(t, root.RemoveFile("a/f.txt"))
	assert.False(t, root.RemoveFile("a/f.txt"))
	_, ok := root.GetDirectory("a")
	assert.True(t, ok, "removing a file keeps its parent directory")
}

func TestRemoveDirectorySubtree(t *testing.T) {
	t.Parallel()

	root := NewRoot()
	require.NoError(t, root.AddFile(NewFile("a/b/c.txt", nil)))
	require.NoError(t, root.AddFile(NewFile("a/d.txt", nil)))

	assert.True(t, root.RemoveDirectory("a"))
	assert.False(t, root.RemoveDirectory("a"))
	_, ok := root.GetFile("a/b/c.txt")
	assert.False(t, ok)
	assert.Equal(t, 0, root.NumFiles(UnboundedDepth))

	// Root cannot be removed.
	assert.False(t, root.RemoveDirectory(""))
	assert.False(t, root.RemoveDirectory("/"))
}

func TestRemoveEmptyDirectories(t *testing.T) {
	t.Parallel()

	root := NewRoot()
	require.NoError(t, root.AddFile(NewFile("apple.txt", []byte("a"))))
	require.NoError(t, root.AddFile(NewFile("directory/directory/directory/apple.txt", []byte("b"))))
	_, err := root.AddDirectory("newdirectory/")
	require.NoError(t, err)

	root.RemoveEmptyDirectories()

	_, ok := root.GetDirectory("newdirectory")
	assert.False(t, ok)
	_, ok = root.GetDirectory("directory/directory/directory")
	assert.True(t, ok, "a chain holding a file survives")

	assert.Equal(t, 2, root.NumFiles(UnboundedDepth))
	assert.Equal(t, 4, root.NumDirectories(UnboundedDepth))
	assert.Equal(t, 6, root.NumMembers(UnboundedDepth))
}

func TestRemoveEmptyDirectoriesPrunesChains(t *testing.T) {
	t.Parallel()

	root := NewRoot()
	_, err := root.AddDirectory("a/b/c")
	require.NoError(t, err)
	require.NoError(t, root.AddFile(NewFile("kept/file.txt", nil)))

	root.RemoveEmptyDirectories()

	// A directory containing only empty directories holds no files at any
	// depth and is itself pruned.
	_, ok := root.GetDirectory("a")
	assert.False(t, ok)

	for d := range root.Directories() {
		assert.NotZero(t, d.NumFiles(UnboundedDepth),
			"remaining directory %q has no files beneath it", d.Path())
	}
	_, ok = root.GetDirectory("kept")
	assert.True(t, ok)
}

func TestDepthBoundedCounts(t *testing.T) {
	t.Parallel()

	root := NewRoot()
	require.NoError(t, root.AddFile(NewFile("f0.txt", nil)))
	require.NoError(t, root.AddFile(NewFile("d1/f1.txt", nil)))
	require.NoError(t, root.AddFile(NewFile("d1/d2/f2.txt", nil)))

	assert.Equal(t, 1, root.NumFiles(0))
	assert.Equal(t, 2, root.NumFiles(1))
	assert.Equal(t, 3, root.NumFiles(2))
	assert.Equal(t, 3, root.NumFiles(UnboundedDepth))

	assert.Equal(t, 2, root.NumDirectories(0))
	assert.Equal(t, 3, root.NumDirectories(1))
	assert.Equal(t, 3, root.NumDirectories(UnboundedDepth))

	assert.Equal(t, 3, root.NumMembers(0))
	assert.Equal(t, 6, root.NumMembers(UnboundedDepth))
}

func TestFilesOrdering(t *testing.T) {
	t.Parallel()

	root := NewRoot()
	for _, p := range []string{"z.txt", "a.txt", "b/c.txt", "b/d/x.txt"} {
		require.NoError(t, root.AddFile(NewFile(p, nil)))
	}

	var got []string
	for f := range root.Files() {
		got = append(got, f.Path())
	}
	// Child directories are exhausted before a directory's own files.
	assert.Equal(t, []string{"b/d/x.txt", "b/c.txt", "a.txt", "z.txt"}, got)
}

func TestDirectoriesOrdering(t *testing.T) {
	t.Parallel()

	root := NewRoot()
	require.NoError(t, root.AddFile(NewFile("b/d/x.txt", nil)))
	_, err := root.AddDirectory("a")
	require.NoError(t, err)

	var got []string
	for d := range root.Directories() {
		got = append(got, d.Path())
	}
	// Parent precedes children, root included.
	assert.Equal(t, []string{"", "a", "b", "b/d"}, got)
}

func TestMembersOrdering(t *testing.T) {
	t.Parallel()

	root := NewRoot()
	for _, p := range []string{"top.txt", "b/c.txt", "b/d/x.txt"} {
		require.NoError(t, root.AddFile(NewFile(p, nil)))
	}

	var got []string
	for m := range root.Members() {
		path := m.Path()
		if m.IsDir() {
			path += "/"
		}
		got = append(got, path)
	}
	// Each child directory is yielded, then its members; own files last.
	assert.Equal(t, []string{"b/", "b/d/", "b/d/x.txt", "b/c.txt", "top.txt"}, got)
}

func TestIteratorsRestart(t *testing.T) {
	t.Parallel()

	root := NewRoot()
	require.NoError(t, root.AddFile(NewFile("a.txt", nil)))
	require.NoError(t, root.AddFile(NewFile("b.txt", nil)))

	seq := root.Files()
	count := func() int {
		n := 0
		for range seq {
			n++
		}
		return n
	}
	assert.Equal(t, 2, count())
	assert.Equal(t, 2, count(), "sequences restart from the live tree")

	// Early break is honored.
	n := 0
	for range seq {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestSetDataRecomputesCRC(t *testing.T) {
	t.Parallel()

	f := NewFile("f.bin", []byte("one"))
	crc1 := f.CRC32()
	f.SetCompressed([]byte{0xde, 0xad})

	f.SetData([]byte("two"))
	assert.NotEqual(t, crc1, f.CRC32())
	_, ok := f.Compressed()
	assert.False(t, ok, "reassigning the payload drops the compressed cache")
}

func TestFileClone(t *testing.T) {
	t.Parallel()

	f := NewFile("dir/f.bin", []byte("payload"))
	f.ModTime = time.Unix(1700000000, 0)
	f.Tar.Owner = "alice"

	c := f.Clone()
	c.SetPath("elsewhere/f.bin")
	assert.Equal(t, "dir/f.bin", f.Path())
	assert.Equal(t, "elsewhere/f.bin", c.Path())
	assert.Equal(t, f.Data(), c.Data())
	assert.Equal(t, f.ModTime, c.ModTime)
	assert.Equal(t, "alice", c.Tar.Owner)
}
