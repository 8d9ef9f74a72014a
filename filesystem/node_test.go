package filesystem

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brettbedarf/memfs"
)

func TestDir_InsertDir(t *testing.T) {
	t.Parallel()

	parent := NewDir("parent")
	child := NewDir("child")

	require.NoError(t, parent.InsertDir(child))

	// Verify child was added
	got, ok := parent.Dir("child")
	require.True(t, ok)
	assert.Same(t, child, got)

	// Verify parent reference was set
	assert.Same(t, parent, child.Parent())
}

func TestDir_InsertDir_Duplicate(t *testing.T) {
	t.Parallel()

	parent := NewDir("parent")
	first := NewDir("child")
	require.NoError(t, parent.InsertDir(first))

	err := parent.InsertDir(NewDir("child"))

	assert.ErrorIs(t, err, memfs.ErrDuplicateName)
	got, _ := parent.Dir("child")
	assert.Same(t, first, got, "original dir must be kept")
}

func TestDir_PutDir_ReplacesAndDestroysSubtree(t *testing.T) {
	t.Parallel()

	parent := NewDir("parent")
	old := NewDir("child")
	parent.PutDir(old)
	nested := NewDir("nested")
	old.PutDir(nested)
	file := NewFile("f.txt", "data")
	nested.PutFile(file)

	fresh := NewDir("child")
	parent.PutDir(fresh)

	got, ok := parent.Dir("child")
	require.True(t, ok)
	assert.Same(t, fresh, got)
	assert.Empty(t, got.Dirs())

	// Whole replaced subtree is marked deleted
	assert.True(t, old.IsDel())
	assert.True(t, nested.IsDel())
	assert.True(t, file.IsDel())
	assert.Nil(t, old.Parent())
	assert.False(t, fresh.IsDel())
}

func TestDir_Lookup_Missing(t *testing.T) {
	t.Parallel()

	dir := NewDir("dir")

	d, ok := dir.Dir("nope")
	assert.False(t, ok)
	assert.Nil(t, d)

	f, ok := dir.File("nope")
	assert.False(t, ok)
	assert.Nil(t, f)
}

func TestDir_DirAndFileShareName(t *testing.T) {
	t.Parallel()

	dir := NewDir("dir")
	require.NoError(t, dir.InsertDir(NewDir("same")))
	require.NoError(t, dir.InsertFile(NewFile("same", "")))

	_, dirOK := dir.Dir("same")
	_, fileOK := dir.File("same")
	assert.True(t, dirOK)
	assert.True(t, fileOK)
}

func TestDir_InsertFile_Duplicate(t *testing.T) {
	t.Parallel()

	dir := NewDir("dir")
	require.NoError(t, dir.InsertFile(NewFile("a.txt", "one")))

	err := dir.InsertFile(NewFile("a.txt", "two"))

	assert.ErrorIs(t, err, memfs.ErrDuplicateName)
	f, _ := dir.File("a.txt")
	assert.Equal(t, "one", f.Content())
}

func TestDir_PutFile_Replaces(t *testing.T) {
	t.Parallel()

	dir := NewDir("dir")
	old := NewFile("a.txt", "one")
	dir.PutFile(old)

	dir.PutFile(NewFile("a.txt", ""))

	f, ok := dir.File("a.txt")
	require.True(t, ok)
	assert.Equal(t, "", f.Content())
	assert.True(t, old.IsDel())
}

func TestDir_RemoveFile(t *testing.T) {
	t.Parallel()

	dir := NewDir("dir")
	file := NewFile("a.txt", "one")
	dir.PutFile(file)

	removed, ok := dir.RemoveFile("a.txt")
	require.True(t, ok)
	assert.Same(t, file, removed)

	_, ok = dir.File("a.txt")
	assert.False(t, ok)

	// Test removing non-existent file
	_, ok = dir.RemoveFile("a.txt")
	assert.False(t, ok)
}

func TestDir_ChildrenSorted(t *testing.T) {
	t.Parallel()

	dir := NewDir("dir")
	for _, n := range []string{"c", "a", "b"} {
		dir.PutDir(NewDir(n))
		dir.PutFile(NewFile(n+".txt", ""))
	}

	dirNames := make([]string, 0, 3)
	for _, d := range dir.Dirs() {
		dirNames = append(dirNames, d.Name())
	}
	fileNames := make([]string, 0, 3)
	for _, f := range dir.Files() {
		fileNames = append(fileNames, f.Name())
	}

	assert.Equal(t, []string{"a", "b", "c"}, dirNames)
	assert.Equal(t, []string{"a.txt", "b.txt", "c.txt"}, fileNames)
}

func TestDir_Path(t *testing.T) {
	t.Parallel()

	root := NewDir(RootName)
	dir := NewDir("dir")
	sub := NewDir("sub")
	root.PutDir(dir)
	dir.PutDir(sub)

	assert.Equal(t, "", root.Path())
	assert.True(t, root.IsRoot())
	assert.Equal(t, "dir", dir.Path())
	assert.Equal(t, "dir/sub", sub.Path())
	assert.False(t, sub.IsRoot())
}

func TestNode_NodeID_Operations(t *testing.T) {
	t.Parallel()

	file := NewFile("test.txt", "")

	// Initially not registered
	assert.Equal(t, uint64(0), file.NodeID())

	assert.True(t, file.CompareAndSwapNodeID(0, 123))
	assert.Equal(t, uint64(123), file.NodeID())

	// Only one swap from the same old value succeeds
	assert.False(t, file.CompareAndSwapNodeID(0, 124))
	assert.Equal(t, uint64(123), file.NodeID())
}

func TestFile_CloneIsIndependent(t *testing.T) {
	t.Parallel()

	orig := NewFile("a.txt", "hello")
	clone := orig.Clone()
	clone.SetContent("changed")

	assert.Equal(t, "hello", orig.Content())
	assert.Equal(t, "changed", clone.Content())
	assert.Equal(t, orig.Name(), clone.Name())
}

func TestFile_ConcurrentContentAccess(t *testing.T) {
	t.Parallel()

	file := NewFile("a.txt", "")
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			file.SetContent("data")
		}()
		go func() {
			defer wg.Done()
			_ = file.Content()
		}()
	}
	wg.Wait()

	assert.Equal(t, "data", file.Content())
}
