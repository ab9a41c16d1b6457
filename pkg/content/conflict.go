package content

import (
	"github.com/arthur-debert/genout/pkg/errors"
	"github.com/arthur-debert/genout/pkg/types"
)

// declare records (path, content, overwrite) for source in the target's
// map. The caller must hold m.mu.
//
// A path is recorded once. Later declarations must match the first one
// exactly; identical declarations are no-ops, so passes may run in any order.
func (m *Manager) declare(targetName, path, content string, overwrite bool, source string) error {
	records := m.content[targetName]

	existing, ok := records[path]
	if !ok {
		records[path] = types.ContentRecord{
			Content:   content,
			Overwrite: overwrite,
			Source:    source,
		}
		m.logger.Debug().
			Str("target", targetName).
			Str("path", path).
			Str("source", source).
			Bool("overwrite", overwrite).
			Msg("File declared")
		return nil
	}

	if existing.Content != content {
		return conflictError(errors.ErrContentConflict, "content", targetName, path, source, existing.Source)
	}
	if existing.Overwrite != overwrite {
		return conflictError(errors.ErrOverwriteConflict, "overwrite flag", targetName, path, source, existing.Source)
	}

	m.logger.Trace().
		Str("target", targetName).
		Str("path", path).
		Str("source", source).
		Str("existingSource", existing.Source).
		Msg("Identical file declared again")
	return nil
}

func conflictError(code errors.ErrorCode, what, targetName, path, source, existingSource string) error {
	return errors.Newf(code,
		"Conflict generating file %q from %q: A file with different %s was already generated from %q.",
		path, source, what, existingSource).
		WithDetails(map[string]interface{}{
			"target":         targetName,
			"path":           path,
			"source":         source,
			"existingSource": existingSource,
		})
}
