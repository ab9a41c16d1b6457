package core_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/genout/pkg/core"
	"github.com/arthur-debert/genout/pkg/errors"
	"github.com/arthur-debert/genout/pkg/filesystem"
	"github.com/arthur-debert/genout/pkg/testutil"
	"github.com/arthur-debert/genout/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const projectConfig = `
[workspace]
roots = ["models"]

[targets.LIB]
output = "lib"
overwrite = true
clean = true
`

func setupProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	testutil.WriteTree(t, filesystem.NewOS(), dir, files)
	return dir
}

func baseProject() map[string]string {
	return map[string]string{
		"genout.toml": projectConfig,
		"models/api.gen.yaml": `
files:
  - path: api/client.go
    content: "package api"
  - path: index.ts
    content: "export {}"
    target: LIB
`,
		"models/shared/common.gen.toml": `
[[files]]
path = "index.ts"
content = "export {}"
target = "LIB"

[[files]]
path = "README.md"
from = "readme.txt"
overwrite = false
`,
		"models/shared/readme.txt": "generated readme",
	}
}

func TestGenerateSession(t *testing.T) {
	dir := setupProject(t, baseProject())

	result, err := core.Generate(core.GenerateOptions{ProjectDir: dir})
	require.NoError(t, err)

	assert.NotEmpty(t, result.SessionID)
	assert.Equal(t, core.ModeSync, result.Mode)
	assert.Equal(t, []string{
		filepath.Join(dir, "models", "api.gen.yaml"),
		filepath.Join(dir, "models", "shared", "common.gen.toml"),
	}, result.Documents)

	require.Len(t, result.Targets, 2)
	assert.Equal(t, types.DefaultTargetName, result.Targets[0].Target.Name)
	assert.Equal(t, filepath.Join(dir, "generated"), result.Targets[0].Root)
	assert.Equal(t, []string{"README.md", "api/client.go"}, result.Targets[0].Report.Created)
	assert.Equal(t, "LIB", result.Targets[1].Target.Name)
	assert.Equal(t, []string{"index.ts"}, result.Targets[1].Report.Created)

	fsys := filesystem.NewOS()
	assert.Equal(t, map[string]string{
		"README.md":     "generated readme",
		"api/client.go": "package api",
	}, testutil.ReadTree(t, fsys, filepath.Join(dir, "generated")))
	assert.Equal(t, map[string]string{"index.ts": "export {}"}, testutil.ReadTree(t, fsys, filepath.Join(dir, "lib")))

	// a second session changes nothing
	again, err := core.Generate(core.GenerateOptions{ProjectDir: dir})
	require.NoError(t, err)
	for _, tr := range again.Targets {
		assert.False(t, tr.Report.Changed(), tr.Target.Name)
	}
}

func TestGenerateCleansStaleOutput(t *testing.T) {
	dir := setupProject(t, baseProject())
	_, err := core.Generate(core.GenerateOptions{ProjectDir: dir})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib", "old.ts"), []byte("stale"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "generated", "manual.txt"), []byte("kept"), 0644))

	result, err := core.Generate(core.GenerateOptions{ProjectDir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{"old.ts"}, result.Targets[1].Report.Removed)

	_, err = os.Stat(filepath.Join(dir, "lib", "old.ts"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "generated", "manual.txt"))
	assert.NoError(t, err, "DEFAULT is not clean")
}

func TestGenerateConflictWritesNothing(t *testing.T) {
	files := baseProject()
	files["models/zz-conflict.gen.yaml"] = `
files:
  - path: api/client.go
    content: "package other"
`
	dir := setupProject(t, files)

	_, err := core.Generate(core.GenerateOptions{ProjectDir: dir})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrContentConflict), "got %v", err)
	assert.Contains(t, err.Error(), `"zz-conflict.gen.yaml"`)
	assert.Contains(t, err.Error(), `"api.gen.yaml"`)

	_, statErr := os.Stat(filepath.Join(dir, "generated"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerateDryRun(t *testing.T) {
	dir := setupProject(t, baseProject())

	result, err := core.Generate(core.GenerateOptions{ProjectDir: dir, DryRun: true})
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.True(t, result.Targets[0].Report.DryRun)
	assert.Len(t, result.Targets[0].Report.Created, 2)

	_, statErr := os.Stat(filepath.Join(dir, "generated"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerateVerify(t *testing.T) {
	dir := setupProject(t, baseProject())

	result, err := core.Generate(core.GenerateOptions{ProjectDir: dir, Mode: core.ModeVerify})
	require.NoError(t, err)
	assert.True(t, result.HasDrift())
	assert.True(t, errors.IsErrorCode(result.DriftError(), errors.ErrDrift))

	_, err = core.Generate(core.GenerateOptions{ProjectDir: dir})
	require.NoError(t, err)

	result, err = core.Generate(core.GenerateOptions{ProjectDir: dir, Mode: core.ModeVerify})
	require.NoError(t, err)
	assert.False(t, result.HasDrift())
	assert.NoError(t, result.DriftError())
}

func TestGenerateExplicitDocuments(t *testing.T) {
	dir := setupProject(t, baseProject())

	result, err := core.Generate(core.GenerateOptions{
		ProjectDir:  dir,
		Documents:   []string{filepath.Join(dir, "models", "api.gen.yaml")},
		Concurrency: 1,
	})
	require.NoError(t, err)
	assert.Len(t, result.Documents, 1)
	assert.Equal(t, []string{"api/client.go"}, result.Targets[0].Report.Created)
}

func TestGenerateUnknownTargetInDocument(t *testing.T) {
	dir := setupProject(t, map[string]string{
		"a.gen.yaml": "files:\n  - path: x\n    content: x\n    target: NOPE\n",
	})

	_, err := core.Generate(core.GenerateOptions{ProjectDir: dir})
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownTarget), "got %v", err)
}

func TestListTargets(t *testing.T) {
	dir := setupProject(t, map[string]string{"genout.toml": projectConfig})

	infos, err := core.ListTargets(dir, "")
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, types.DefaultTarget(), infos[0].Target)
	assert.Equal(t, filepath.Join(dir, "generated"), infos[0].Root)
	assert.Equal(t, types.Target{Name: "LIB", DefaultOverwrite: true, Clean: true}, infos[1].Target)
	assert.Equal(t, filepath.Join(dir, "lib"), infos[1].Root)
}
