package manifest

import (
	"path/filepath"

	"github.com/arthur-debert/genout/pkg/content"
	"github.com/arthur-debert/genout/pkg/errors"
	"github.com/arthur-debert/genout/pkg/logging"
	"github.com/arthur-debert/genout/pkg/types"
)

// Generate runs the generation pass of the document bound to h: every file
// it lists is declared through h. The handle's model must be the *Document.
// The first failing declaration stops the pass and is returned unchanged.
func Generate(h *content.Handle, fsys types.FS) error {
	doc, ok := h.Model().(*Document)
	if !ok {
		return errors.Newf(errors.ErrInvalidInput,
			"generation pass for %s needs a manifest document, got %T", h.Source(), h.Model()).
			WithDetail("source", h.Source())
	}

	logger := logging.GetLogger("manifest").With().
		Str("document", doc.Path).
		Str("source", h.Source()).
		Logger()

	for _, f := range doc.Files {
		text, err := f.resolveContent(fsys, doc.Dir())
		if err != nil {
			return err
		}

		var opts []content.FileOption
		if f.Target != "" {
			opts = append(opts, content.WithTarget(f.Target))
		}
		if f.Overwrite != nil {
			opts = append(opts, content.WithOverwrite(*f.Overwrite))
		}

		if err := h.CreateFile(f.Path, text, opts...); err != nil {
			return err
		}
		logger.Trace().Str("file", f.String()).Msg("File declared")
	}

	logger.Debug().Int("files", len(doc.Files)).Msg("Generation pass complete")
	return nil
}

func (f File) resolveContent(fsys types.FS, dir string) (string, error) {
	if f.Content != nil {
		return *f.Content, nil
	}
	from := filepath.FromSlash(f.From)
	if !filepath.IsAbs(from) {
		from = filepath.Join(dir, from)
	}
	data, err := fsys.ReadFile(from)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileRead, "failed to read %s for %s", from, f.Path).
			WithDetail("path", from)
	}
	return string(data), nil
}
