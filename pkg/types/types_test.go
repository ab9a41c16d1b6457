package types_test

import (
	"testing"

	"github.com/arthur-debert/genout/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestDefaultTarget(t *testing.T) {
	target := types.DefaultTarget()

	assert.Equal(t, "DEFAULT", target.Name)
	assert.True(t, target.DefaultOverwrite)
	assert.False(t, target.Clean)
	assert.True(t, target.IsDefault())
	assert.False(t, types.Target{Name: "LIB"}.IsDefault())
}

func TestFileOptions(t *testing.T) {
	yes, no := true, false

	tests := []struct {
		name          string
		opts          types.FileOptions
		targetDefault bool
		wantOverwrite bool
		wantTarget    string
	}{
		{"zero value defers to target", types.FileOptions{}, false, false, "DEFAULT"},
		{"zero value with overwriting target", types.FileOptions{}, true, true, "DEFAULT"},
		{"explicit true wins", types.FileOptions{Overwrite: &yes}, false, true, "DEFAULT"},
		{"explicit false wins", types.FileOptions{Overwrite: &no, Target: "LIB"}, true, false, "LIB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantOverwrite, tt.opts.ResolveOverwrite(tt.targetDefault))
			assert.Equal(t, tt.wantTarget, tt.opts.TargetName())
		})
	}
}

func TestGeneratedContent(t *testing.T) {
	content := types.GeneratedContent{
		"src/b.ts": {Content: "b", Overwrite: true, Source: "b.dsl"},
		"src/a.ts": {Content: "a", Overwrite: false, Source: "a.dsl"},
	}

	assert.Equal(t, []string{"src/a.ts", "src/b.ts"}, content.Paths())

	clone := content.Clone()
	clone["src/c.ts"] = types.ContentRecord{Content: "c"}
	assert.Len(t, content, 2)
	assert.Equal(t, content["src/a.ts"], clone["src/a.ts"])
}
