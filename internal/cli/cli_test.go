package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/genout/internal/version"
	"github.com/arthur-debert/genout/pkg/filesystem"
	"github.com/arthur-debert/genout/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
[targets.LIB]
output = "lib"
clean = true
`

const testDocument = `
files:
  - path: main.go
    content: "package main"
  - path: index.ts
    content: "export {}"
    target: LIB
`

func setupProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	testutil.WriteTree(t, filesystem.NewOS(), dir, map[string]string{
		"genout.toml":    testConfig,
		"model.gen.yaml": testDocument,
	})
	return dir
}

// run executes the command line and returns its exit code, stdout and stderr
func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	rootCmd, opts := newRootCmd()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	code := execute(rootCmd, opts, args)
	return code, stdout.String(), stderr.String()
}

func TestGenerateCmd(t *testing.T) {
	dir := setupProject(t)

	code, out, errOut := run(t, "generate", "--project", dir, "--format", "text")
	require.Equal(t, 0, code, errOut)

	assert.Contains(t, out, "created    main.go")
	assert.Contains(t, out, "created    index.ts")

	tree := testutil.ReadTree(t, filesystem.NewOS(), dir)
	assert.Equal(t, "package main", tree["generated/main.go"])
	assert.Equal(t, "export {}", tree["lib/index.ts"])
}

func TestPlanCmdWritesNothing(t *testing.T) {
	dir := setupProject(t)

	code, out, errOut := run(t, "plan", "-C", dir, "--format", "text")
	require.Equal(t, 0, code, errOut)

	assert.Contains(t, out, "sync (dry run)")
	assert.NoDirExists(t, filepath.Join(dir, "generated"))
	assert.NoDirExists(t, filepath.Join(dir, "lib"))
}

func TestVerifyCmd(t *testing.T) {
	dir := setupProject(t)

	code, _, errOut := run(t, "verify", "-C", dir, "--format", "text")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "[DRIFT]")

	code, _, errOut = run(t, "generate", "-C", dir, "--format", "text")
	require.Equal(t, 0, code, errOut)

	code, out, errOut := run(t, "verify", "-C", dir, "--format", "text")
	assert.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "up to date")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib", "stale.ts"), []byte("old"), 0644))
	code, out, _ = run(t, "verify", "-C", dir, "--format", "text")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "unexpected stale.ts")
}

func TestGenerateCmdJSON(t *testing.T) {
	dir := setupProject(t)

	code, out, errOut := run(t, "generate", "-C", dir, "--format", "json")
	require.Equal(t, 0, code, errOut)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "sync", decoded["mode"])
	assert.Len(t, decoded["targets"], 2)
}

func TestGenerateCmdConflict(t *testing.T) {
	dir := setupProject(t)
	testutil.WriteTree(t, filesystem.NewOS(), dir, map[string]string{
		"other.gen.yaml": "files:\n  - path: main.go\n    content: \"package other\"\n",
	})

	code, _, errOut := run(t, "generate", "-C", dir, "--format", "text")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "error: [CONTENT_CONFLICT]")
	assert.NoDirExists(t, filepath.Join(dir, "generated"))
}

func TestErrorRenderedAsJSON(t *testing.T) {
	dir := setupProject(t)

	code, _, errOut := run(t, "generate", "-C", dir, "--format", "json", "missing.gen.yaml")
	assert.Equal(t, 1, code)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(errOut), &decoded))
	assert.Equal(t, "FILE_READ", decoded["code"])
}

func TestInvalidFormat(t *testing.T) {
	code, _, errOut := run(t, "targets", "--format", "xml")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "INVALID_INPUT")
}

func TestTargetsCmd(t *testing.T) {
	dir := setupProject(t)

	code, out, errOut := run(t, "targets", "-C", dir, "--format", "json")
	require.Equal(t, 0, code, errOut)

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "DEFAULT", decoded[0]["name"])
	assert.Equal(t, "LIB", decoded[1]["name"])
	assert.Equal(t, filepath.Join(dir, "lib"), decoded[1]["output"])
}

func TestConfigCmd(t *testing.T) {
	dir := setupProject(t)

	code, out, errOut := run(t, "config", "-C", dir)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "LIB")
	assert.Contains(t, out, "concurrency")

	code, out, errOut = run(t, "config", "--defaults")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "[sync]")
}

func TestVersionCmd(t *testing.T) {
	code, out, _ := run(t, "version")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "genout version "+version.Version)
	assert.Contains(t, out, "Commit: "+version.Commit)
}

func TestCompletionCmd(t *testing.T) {
	code, out, _ := run(t, "completion", "bash")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "genout")

	code, _, _ = run(t, "completion", "tcsh")
	assert.Equal(t, 1, code)
}

func TestManCmd(t *testing.T) {
	code, out, _ := run(t, "man")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "GENOUT")

	dir := t.TempDir()
	code, _, errOut := run(t, "man", dir)
	require.Equal(t, 0, code, errOut)
	assert.FileExists(t, filepath.Join(dir, "genout.1"))
	assert.FileExists(t, filepath.Join(dir, "genout-generate.1"))
}

func TestNoCommand(t *testing.T) {
	code, _, errOut := run(t)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "no command specified")
}
