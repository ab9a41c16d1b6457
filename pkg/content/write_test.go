package content_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/genout/pkg/content"
	"github.com/arthur-debert/genout/pkg/errors"
	"github.com/arthur-debert/genout/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteToDiskLibScenario(t *testing.T) {
	m := content.NewManager()
	require.NoError(t, m.AddTarget("LIB", false, false))
	h := m.HandleFor(types.Document{URI: "lib.dsl"})

	require.NoError(t, h.CreateFile("x.txt", "hello", content.WithTarget("LIB")))
	require.NoError(t, h.CreateFile("x.txt", "hello", content.WithTarget("LIB")))

	lib, err := m.GeneratedContent("LIB")
	require.NoError(t, err)
	assert.Len(t, lib, 1)

	outDir := t.TempDir()
	report, err := m.WriteToDisk(outDir, "LIB")
	require.NoError(t, err)
	assert.Equal(t, []string{"x.txt"}, report.Created)

	data, err := os.ReadFile(filepath.Join(outDir, "x.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestWriteToDiskDefaultTarget(t *testing.T) {
	m := content.NewManager()
	h := m.HandleFor(types.Document{URI: "a.dsl"})
	require.NoError(t, h.CreateFile("nested/dir/a.txt", "a"))

	outDir := filepath.Join(t.TempDir(), "out")
	_, err := m.WriteToDisk(outDir, "")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(outDir, "nested", "dir", "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "a", string(data))
}

func TestWriteToDiskUnknownTarget(t *testing.T) {
	m := content.NewManager()
	_, err := m.WriteToDisk(t.TempDir(), "nope")
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownTarget))
}
