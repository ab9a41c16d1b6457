package manifest

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/genout/pkg/errors"
	"github.com/arthur-debert/genout/pkg/logging"
	"github.com/arthur-debert/genout/pkg/types"
)

// Discover walks every root and returns the files whose base name matches
// one of patterns, sorted and without duplicates. Hidden directories are
// not entered. Roots that do not exist are skipped.
func Discover(fsys types.FS, roots, patterns []string) ([]string, error) {
	logger := logging.GetLogger("manifest.discover")
	seen := make(map[string]bool)

	var walk func(dir string) error
	walk = func(dir string) error {
		entries, err := fsys.ReadDir(dir)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileRead, "failed to list %s", dir).
				WithDetail("path", dir)
		}
		for _, entry := range entries {
			full := filepath.Join(dir, entry.Name())
			if entry.IsDir() {
				if strings.HasPrefix(entry.Name(), ".") {
					continue
				}
				if err := walk(full); err != nil {
					return err
				}
				continue
			}
			if matchesAny(entry.Name(), patterns) {
				seen[full] = true
			}
		}
		return nil
	}

	for _, root := range roots {
		info, err := fsys.Stat(root)
		if err != nil {
			if os.IsNotExist(err) {
				logger.Warn().Str("root", root).Msg("Workspace root does not exist, skipping")
				continue
			}
			return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to stat %s", root).
				WithDetail("path", root)
		}
		if !info.IsDir() {
			continue
		}
		if err := walk(root); err != nil {
			return nil, err
		}
	}

	docs := make([]string, 0, len(seen))
	for p := range seen {
		docs = append(docs, p)
	}
	sort.Strings(docs)

	logger.Debug().Strs("roots", roots).Int("documents", len(docs)).Msg("Documents discovered")
	return docs, nil
}

func matchesAny(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := path.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
