package fsutil

import (
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, fsys FileSystem, name, content string) {
	t.Helper()
	w, err := fsys.Create(name)
	require.NoError(t, err)
	_, err = w.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
}

func TestOSFileSystem(t *testing.T) {
	var fsys FileSystem = OSFileSystem{}
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, fsys.MkdirAll(dir, 0755))

	name := filepath.Join(dir, "frame.png")
	writeFile(t, fsys, name, "png")

	data, err := fsys.ReadFile(name)
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))
}

func TestMemoryFileSystem(t *testing.T) {
	m := NewMemoryFileSystem()
	require.NoError(t, m.MkdirAll("plots/run1", 0755))
	assert.True(t, m.IsDir("plots"))
	assert.True(t, m.IsDir("plots/run1"))
	assert.False(t, m.IsDir("other"))

	w, err := m.Create("plots/run1/b.png")
	require.NoError(t, err)
	_, err = w.Write([]byte("partial"))
	require.NoError(t, err)
	_, err = m.ReadFile("plots/run1/b.png")
	assert.ErrorIs(t, err, fs.ErrNotExist, "file invisible until closed")
	require.NoError(t, w.Close())

	writeFile(t, m, "plots/run1/a.png", "first")
	writeFile(t, m, "plots/run1/./a.png", "second")

	data, err := m.ReadFile("plots/run1/a.png")
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
	assert.Equal(t, []string{"plots/run1/a.png", "plots/run1/b.png"}, m.Files())
}
