package content

import (
	"github.com/arthur-debert/genout/pkg/types"
	"github.com/arthur-debert/genout/pkg/workspace"
)

// FileOption adjusts the FileOptions of a single CreateFile call
type FileOption func(*types.FileOptions)

// WithTarget selects the target a file is declared in
func WithTarget(name string) FileOption {
	return func(o *types.FileOptions) {
		o.Target = name
	}
}

// WithOverwrite overrides the target's default overwrite flag for one file
func WithOverwrite(overwrite bool) FileOption {
	return func(o *types.FileOptions) {
		o.Overwrite = &overwrite
	}
}

// NewFileOptions applies opts to zero FileOptions
func NewFileOptions(opts ...FileOption) types.FileOptions {
	var o types.FileOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Handle is the capability a single generation pass writes through. It is
// bound to one document and carries no state beyond that identity.
type Handle struct {
	manager       *Manager
	document      types.Document
	workspaceRoot string
	hasRoot       bool
	localPath     string
	source        string
}

// HandleFor returns a Handle for the pass over document. The owning
// workspace root is the first of roots (or of the session's roots, when none
// are given) whose text prefixes the document URI.
func (m *Manager) HandleFor(document types.Document, roots ...string) *Handle {
	if len(roots) == 0 {
		roots = m.workspaceRoots
	}

	h := &Handle{
		manager:  m,
		document: document,
	}
	h.workspaceRoot, h.hasRoot = workspace.ResolveRoot(document.URI, roots)
	if h.hasRoot {
		h.localPath = workspace.LocalPath(document.URI, h.workspaceRoot)
	}

	switch {
	case h.localPath != "":
		h.source = h.localPath
	case document.URI != "":
		h.source = document.URI
	default:
		h.source = types.UnknownDocument
	}

	m.logger.Debug().
		Str("document", document.URI).
		Str("workspaceRoot", h.workspaceRoot).
		Str("source", h.source).
		Msg("Generation handle created")
	return h
}

// CreateFile declares a file produced by this pass
func (h *Handle) CreateFile(path, content string, opts ...FileOption) error {
	return h.manager.CreateFile(path, content, h.source, NewFileOptions(opts...))
}

// Document returns the document this pass generates from
func (h *Handle) Document() types.Document {
	return h.document
}

// Model returns the parsed document model, if the driver supplied one
func (h *Handle) Model() any {
	return h.document.Model
}

// WorkspaceRoot returns the root owning the document, if any matched
func (h *Handle) WorkspaceRoot() (string, bool) {
	return h.workspaceRoot, h.hasRoot
}

// DocumentLocalPath returns the document path relative to its workspace
// root. It is absent when no root matched.
func (h *Handle) DocumentLocalPath() (string, bool) {
	return h.localPath, h.hasRoot
}

// Source is the description records created through this handle carry
func (h *Handle) Source() string {
	return h.source
}
