package workspace_test

import (
	"testing"

	"github.com/arthur-debert/genout/pkg/workspace"
	"github.com/stretchr/testify/assert"
)

func TestResolveRoot(t *testing.T) {
	tests := []struct {
		name     string
		document string
		roots    []string
		wantRoot string
		wantOK   bool
	}{
		{
			name:     "no roots",
			document: "file:///ws/a.dsl",
			wantOK:   false,
		},
		{
			name:     "single matching root",
			document: "file:///ws/models/a.dsl",
			roots:    []string{"file:///ws"},
			wantRoot: "file:///ws",
			wantOK:   true,
		},
		{
			name:     "first match wins",
			document: "file:///ws/models/a.dsl",
			roots:    []string{"file:///other", "file:///ws", "file:///ws/models"},
			wantRoot: "file:///ws",
			wantOK:   true,
		},
		{
			name:     "candidate order breaks ties",
			document: "file:///ws/models/a.dsl",
			roots:    []string{"file:///ws/models", "file:///ws"},
			wantRoot: "file:///ws/models",
			wantOK:   true,
		},
		{
			name:     "outside all roots",
			document: "file:///elsewhere/a.dsl",
			roots:    []string{"file:///ws"},
			wantOK:   false,
		},
		{
			name:     "empty document",
			document: "",
			roots:    []string{"file:///ws"},
			wantOK:   false,
		},
		{
			name:     "empty candidates are ignored",
			document: "/ws/a.dsl",
			roots:    []string{"", "/ws"},
			wantRoot: "/ws",
			wantOK:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, ok := workspace.ResolveRoot(tt.document, tt.roots)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantRoot, root)
		})
	}
}

func TestLocalPath(t *testing.T) {
	assert.Equal(t, "models/a.dsl", workspace.LocalPath("file:///ws/models/a.dsl", "file:///ws"))
	assert.Equal(t, "models/a.dsl", workspace.LocalPath("file:///ws/models/a.dsl", "file:///ws/"))
	assert.Equal(t, "a.dsl", workspace.LocalPath("/ws/a.dsl", "/ws"))
	assert.Equal(t, "", workspace.LocalPath("/ws", "/ws"))
}
