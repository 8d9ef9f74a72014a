package server

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brettbedarf/memfs"
	"github.com/brettbedarf/memfs/config"
)

func newTestMemFs(t *testing.T) *MemFs {
	t.Helper()
	return New(config.NewDefaultConfig())
}

func TestMemFs_Seed(t *testing.T) {
	t.Parallel()

	m := newTestMemFs(t)
	dirs := []*memfs.DirCreateRequest{
		{NodeRequest: memfs.NodeRequest{Path: "docs/api", Type: memfs.DirNodeType, UUID: "d1"}},
		{NodeRequest: memfs.NodeRequest{Path: "bad-name", Type: memfs.DirNodeType, UUID: "d2"}},
	}
	files := []*memfs.FileCreateRequest{
		{NodeRequest: memfs.NodeRequest{Path: "docs/readme.txt", Type: memfs.FileNodeType, UUID: "f1"}, Content: "hi"},
		{NodeRequest: memfs.NodeRequest{Path: "docs/readme.txt", Type: memfs.FileNodeType, UUID: "f2"}, Content: "dup"},
		{NodeRequest: memfs.NodeRequest{Path: "top.txt", Type: memfs.FileNodeType, UUID: "f3"}},
	}

	dirCnt, fileCnt := m.Seed(dirs, files)
	assert.Equal(t, 1, dirCnt, "invalid dir name is skipped")
	assert.Equal(t, 2, fileCnt, "duplicate file is skipped")

	require.NoError(t, m.Cd("docs"))
	content, err := m.Cat("readme.txt")
	require.NoError(t, err)
	assert.Equal(t, "hi", content)

	listing, err := m.Ls("/docs")
	require.NoError(t, err)
	assert.Equal(t, []string{"api"}, listing.Dirs())
	assert.Equal(t, []string{"readme.txt"}, listing.Files())
}

func TestMemFs_Operations(t *testing.T) {
	t.Parallel()

	m := newTestMemFs(t)
	require.NoError(t, m.Mkdir("a"))
	require.NoError(t, m.Mkdir("b"))
	require.NoError(t, m.Cd("a"))
	assert.Equal(t, "a", m.CwdName())
	assert.Equal(t, "/a", m.Pwd())

	// Transfers name a directory and move its same-named child file
	require.NoError(t, m.Touch("a"))
	require.NoError(t, m.Echo("a", "data"))
	require.NoError(t, m.Cp("/a", "/b"))
	require.NoError(t, m.Mv("/a", "/"))
	require.NoError(t, m.Rm("/b/a"))

	_, err := m.Cat("a")
	assert.ErrorIs(t, err, memfs.ErrFileNotFound)

	matches, err := m.Find("*")
	require.NoError(t, err)
	assert.Equal(t, []string{"a/", "b/", "a"}, matches)

	require.NoError(t, m.Cd("/"))
	content, err := m.Cat("a")
	require.NoError(t, err)
	assert.Equal(t, "data", content)
}

func TestMemFs_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	m := newTestMemFs(t)
	const workers = 8
	const ops = 50

	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			dir := fmt.Sprintf("w%d", w)
			for i := range ops {
				req := &memfs.FileCreateRequest{
					NodeRequest: memfs.NodeRequest{Path: fmt.Sprintf("%s/f%d", dir, i), Type: memfs.FileNodeType},
					Content:     "x",
				}
				m.Seed(nil, []*memfs.FileCreateRequest{req})
				_, _ = m.Ls("/" + dir)
				_ = m.Pwd()
			}
		}()
	}

	// Readers race with a writer moving the cursor
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range ops {
			_ = m.Cd("/")
			_, _ = m.Find("**")
		}
	}()
	wg.Wait()

	for w := range workers {
		listing, err := m.Ls(fmt.Sprintf("/w%d", w))
		require.NoError(t, err)
		assert.Len(t, listing.Files(), ops)
	}
}

func TestMemFs_UnmountWithoutServe(t *testing.T) {
	t.Parallel()

	m := newTestMemFs(t)
	assert.NoError(t, m.Unmount())
}
