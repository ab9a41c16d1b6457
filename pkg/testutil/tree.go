package testutil

import (
	"path"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/genout/pkg/types"
	"github.com/stretchr/testify/require"
)

// WriteTree creates files under root from a map of slash-separated relative
// paths to content. A path ending in "/" creates an empty directory.
func WriteTree(t *testing.T, fsys types.FS, root string, files map[string]string) {
	t.Helper()

	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if rel[len(rel)-1] == '/' {
			require.NoError(t, fsys.MkdirAll(full, 0755))
			continue
		}
		require.NoError(t, fsys.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, fsys.WriteFile(full, []byte(content), 0644))
	}
}

// ReadTree returns every regular file under root keyed by its
// slash-separated relative path. Empty directories appear with a trailing
// "/" and empty content.
func ReadTree(t *testing.T, fsys types.FS, root string) map[string]string {
	t.Helper()

	tree := make(map[string]string)
	var walk func(dir, rel string)
	walk = func(dir, rel string) {
		entries, err := fsys.ReadDir(dir)
		require.NoError(t, err)
		if len(entries) == 0 && rel != "" {
			tree[rel+"/"] = ""
		}
		for _, e := range entries {
			childRel := path.Join(rel, e.Name())
			childFull := filepath.Join(dir, e.Name())
			if e.IsDir() {
				walk(childFull, childRel)
				continue
			}
			data, err := fsys.ReadFile(childFull)
			require.NoError(t, err)
			tree[childRel] = string(data)
		}
	}
	walk(root, "")
	return tree
}
