package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/genout/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseFS(t *testing.T, fsys types.FS, root string, strictRemove bool) {
	t.Helper()

	testFile := filepath.Join(root, "test.txt")
	testContent := []byte("hello world")

	require.NoError(t, fsys.WriteFile(testFile, testContent, 0644))

	info, err := fsys.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, "test.txt", info.Name())
	assert.Equal(t, int64(len(testContent)), info.Size())

	info, err = fsys.Lstat(testFile)
	require.NoError(t, err)
	assert.False(t, info.IsDir())

	content, err := fsys.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, testContent, content)

	subDir := filepath.Join(root, "sub", "dir")
	require.NoError(t, fsys.MkdirAll(subDir, 0755))

	entries, err := fsys.ReadDir(root)
	require.NoError(t, err)
	names := []string{}
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"test.txt", "sub"}, names)

	require.NoError(t, fsys.Remove(testFile))
	_, err = fsys.Stat(testFile)
	assert.True(t, os.IsNotExist(err))

	if strictRemove {
		// MemMapFs removes non-empty directories, the OS does not
		assert.Error(t, fsys.Remove(filepath.Join(root, "sub")))
	}
	require.NoError(t, fsys.Remove(subDir))
	require.NoError(t, fsys.Remove(filepath.Join(root, "sub")))
}

func TestNewOS(t *testing.T) {
	fsys := NewOS()
	assert.NotNil(t, fsys)
	exerciseFS(t, fsys, t.TempDir(), true)
}

func TestNewMemory(t *testing.T) {
	fsys := NewMemory()
	require.NoError(t, fsys.MkdirAll("/root", 0755))
	exerciseFS(t, fsys, "/root", false)
}

func TestAferoReadFileOnDirectory(t *testing.T) {
	fsys := NewAferoFS(afero.NewMemMapFs())
	require.NoError(t, fsys.MkdirAll("/dir", 0755))

	_, err := fsys.ReadFile("/dir")
	assert.Error(t, err)
}

func TestAferoOverOsFs(t *testing.T) {
	fsys := NewAferoFS(afero.NewOsFs())
	exerciseFS(t, fsys, t.TempDir(), true)
}
