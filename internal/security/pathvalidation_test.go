package security

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveWithin(t *testing.T) {
	root := t.TempDir()
	base := filepath.Join(root, "plots")
	outside := filepath.Join(root, "secret")
	require.NoError(t, os.MkdirAll(filepath.Join(base, "run1"), 0755))
	require.NoError(t, os.MkdirAll(outside, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "run1", "tick_00001.png"), []byte("png"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(outside, "key.txt"), []byte("key"), 0644))
	require.NoError(t, os.Symlink(outside, filepath.Join(base, "link")))

	got, err := ResolveWithin(base, "run1/tick_00001.png")
	require.NoError(t, err)
	assert.Equal(t, "tick_00001.png", filepath.Base(got))

	for _, name := range []string{"../secret/key.txt", "run1/../../secret/key.txt", "link/key.txt", "/etc/passwd"} {
		_, err := ResolveWithin(base, name)
		assert.ErrorIs(t, err, ErrPathEscape, name)
	}

	_, err = ResolveWithin(base, "run1/missing.png")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrPathEscape)

	_, err = ResolveWithin(filepath.Join(root, "nope"), "x")
	assert.Error(t, err)
}
