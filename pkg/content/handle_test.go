package content_test

import (
	"testing"

	"github.com/arthur-debert/genout/pkg/content"
	"github.com/arthur-debert/genout/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type model struct {
	Name string
}

func TestHandleForDocumentInWorkspace(t *testing.T) {
	m := content.NewManager("file:///other", "file:///ws")
	doc := types.Document{URI: "file:///ws/models/a.dsl", Model: &model{Name: "a"}}

	h := m.HandleFor(doc)

	root, ok := h.WorkspaceRoot()
	assert.True(t, ok)
	assert.Equal(t, "file:///ws", root)

	local, ok := h.DocumentLocalPath()
	assert.True(t, ok)
	assert.Equal(t, "models/a.dsl", local)

	assert.Equal(t, "models/a.dsl", h.Source())
	assert.Equal(t, doc, h.Document())
	assert.Equal(t, "a", h.Model().(*model).Name)
}

func TestHandleForDocumentOutsideWorkspace(t *testing.T) {
	m := content.NewManager("file:///ws")

	h := m.HandleFor(types.Document{URI: "file:///elsewhere/a.dsl"})

	_, ok := h.WorkspaceRoot()
	assert.False(t, ok)
	_, ok = h.DocumentLocalPath()
	assert.False(t, ok)
	assert.Equal(t, "file:///elsewhere/a.dsl", h.Source())
}

func TestHandleForUnknownDocument(t *testing.T) {
	m := content.NewManager("file:///ws")

	h := m.HandleFor(types.Document{})

	assert.Equal(t, types.UnknownDocument, h.Source())
	assert.Nil(t, h.Model())
}

func TestHandleForExplicitRoots(t *testing.T) {
	m := content.NewManager("/session-root")

	h := m.HandleFor(types.Document{URI: "/custom/a.dsl"}, "/custom")

	root, ok := h.WorkspaceRoot()
	assert.True(t, ok)
	assert.Equal(t, "/custom", root)
	assert.Equal(t, "a.dsl", h.Source())
}

func TestHandleSourceAttribution(t *testing.T) {
	m := content.NewManager("/ws")
	h := m.HandleFor(types.Document{URI: "/ws/pkg/model.dsl"})

	require.NoError(t, h.CreateFile("out.txt", "x"))

	generated, err := m.GeneratedContent("")
	require.NoError(t, err)
	assert.Equal(t, "pkg/model.dsl", generated["out.txt"].Source)
}

func TestNewFileOptions(t *testing.T) {
	opts := content.NewFileOptions()
	assert.Equal(t, types.FileOptions{}, opts)

	opts = content.NewFileOptions(content.WithTarget("LIB"), content.WithOverwrite(false))
	assert.Equal(t, "LIB", opts.Target)
	require.NotNil(t, opts.Overwrite)
	assert.False(t, *opts.Overwrite)
}
