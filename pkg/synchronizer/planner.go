package synchronizer

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/genout/pkg/errors"
	"github.com/arthur-debert/genout/pkg/types"
	"github.com/rs/zerolog"
)

// planner compares a content map with an output root. It only reads from
// the filesystem.
type planner struct {
	fs     types.FS
	logger zerolog.Logger
}

// declaredFile is a content record under its normalized relative path
type declaredFile struct {
	rel    string
	record types.ContentRecord
}

func (p *planner) plan(target types.Target, content types.GeneratedContent, root string) (*Plan, error) {
	files, keepDirs, err := normalizeContent(content)
	if err != nil {
		return nil, err
	}

	plan := &Plan{Target: target, Root: root}

	rootExists, err := p.checkDir(root)
	if err != nil {
		return nil, err
	}
	plan.CreateRoot = !rootExists

	// Directories sort before their children, so a missing parent is seen
	// before anything below it.
	missing := make(map[string]bool)
	dirs := make([]string, 0, len(keepDirs))
	for dir := range keepDirs {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	for _, dir := range dirs {
		full := filepath.Join(root, dir)
		exists := false
		if rootExists && !missing[filepath.Dir(dir)] {
			if exists, err = p.checkDir(full); err != nil {
				return nil, err
			}
		}
		if !exists {
			missing[dir] = true
			plan.Dirs = append(plan.Dirs, Operation{
				Type:     OperationCreateDir,
				Path:     filepath.ToSlash(dir),
				FullPath: full,
			})
		}
	}

	for _, f := range files {
		op, err := p.planFile(root, f, !rootExists || missing[filepath.Dir(f.rel)])
		if err != nil {
			return nil, err
		}
		plan.Files = append(plan.Files, op)
	}

	if target.Clean && rootExists {
		declared := make(map[string]bool, len(files))
		for _, f := range files {
			declared[f.rel] = true
		}
		if _, err := p.collectStale(plan, root, "", declared, keepDirs); err != nil {
			return nil, err
		}
	}

	p.logger.Debug().
		Str("target", target.Name).
		Str("root", root).
		Int("dirs", len(plan.Dirs)).
		Int("writes", len(plan.Writes())).
		Int("removals", len(plan.Removals)).
		Msg("Sync plan computed")

	return plan, nil
}

// checkDir reports whether path exists as a directory. Anything else at
// path is an error.
func (p *planner) checkDir(path string) (bool, error) {
	info, err := p.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, errors.ErrFileRead, "failed to stat %s", path).
			WithDetail("path", path)
	}
	if !info.IsDir() {
		return false, errors.Newf(errors.ErrInvalidPath, "%s exists and is not a directory", path).
			WithDetail("path", path)
	}
	return true, nil
}

func (p *planner) planFile(root string, f declaredFile, parentMissing bool) (Operation, error) {
	op := Operation{
		Path:     filepath.ToSlash(f.rel),
		FullPath: filepath.Join(root, f.rel),
		Content:  f.record.Content,
	}

	if parentMissing {
		op.Type = OperationCreateFile
		return op, nil
	}

	// Lstat, so a link at the declared path is never written through
	info, err := p.fs.Lstat(op.FullPath)
	if err != nil {
		if os.IsNotExist(err) {
			op.Type = OperationCreateFile
			return op, nil
		}
		return op, errors.Wrapf(err, errors.ErrFileRead, "failed to stat %s", op.FullPath).
			WithDetail("path", op.FullPath)
	}
	if info.Mode()&fs.ModeSymlink != 0 {
		if !f.record.Overwrite {
			op.Type = OperationPreserve
			return op, nil
		}
		op.Type = OperationUpdateFile
		op.ReplaceLink = true
		return op, nil
	}
	if info.IsDir() {
		return op, errors.Newf(errors.ErrInvalidPath, "%s exists and is a directory", op.FullPath).
			WithDetail("path", op.FullPath)
	}

	if !f.record.Overwrite {
		op.Type = OperationPreserve
		return op, nil
	}

	existing, err := p.fs.ReadFile(op.FullPath)
	if err != nil {
		return op, errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", op.FullPath).
			WithDetail("path", op.FullPath)
	}
	if bytes.Equal(existing, []byte(f.record.Content)) {
		op.Type = OperationUnchanged
	} else {
		op.Type = OperationUpdateFile
	}
	return op, nil
}

// collectStale appends removals for everything under dir that is not
// declared. It reports whether dir will be empty once they are applied.
// Contents are always scheduled before their directory.
func (p *planner) collectStale(plan *Plan, dir, rel string, declared, keepDirs map[string]bool) (bool, error) {
	entries, err := p.fs.ReadDir(dir)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileRead, "failed to list %s", dir).
			WithDetail("path", dir)
	}

	empty := true
	for _, entry := range entries {
		childRel := filepath.Join(rel, entry.Name())
		childFull := filepath.Join(dir, entry.Name())

		if entry.IsDir() {
			childEmpty, err := p.collectStale(plan, childFull, childRel, declared, keepDirs)
			if err != nil {
				return false, err
			}
			if childEmpty && !keepDirs[childRel] {
				plan.Removals = append(plan.Removals, Operation{
					Type:     OperationRemoveDir,
					Path:     filepath.ToSlash(childRel),
					FullPath: childFull,
				})
				continue
			}
			empty = false
			continue
		}

		if declared[childRel] {
			empty = false
			continue
		}
		plan.Removals = append(plan.Removals, Operation{
			Type:     OperationRemoveFile,
			Path:     filepath.ToSlash(childRel),
			FullPath: childFull,
		})
	}
	return empty, nil
}

// normalizeContent validates and cleans every path of content. It returns
// the records sorted by path, and the set of directories that must exist
// to hold them.
func normalizeContent(content types.GeneratedContent) ([]declaredFile, map[string]bool, error) {
	files := make([]declaredFile, 0, len(content))
	byRel := make(map[string]string, len(content))

	for _, key := range content.Paths() {
		rel, err := cleanRelPath(key)
		if err != nil {
			return nil, nil, err
		}
		if other, ok := byRel[rel]; ok {
			return nil, nil, errors.Newf(errors.ErrInvalidPath,
				"paths %q and %q refer to the same file", other, key).
				WithDetail("path", key)
		}
		byRel[rel] = key
		files = append(files, declaredFile{rel: rel, record: content[key]})
	}

	keepDirs := make(map[string]bool)
	for _, f := range files {
		for dir := filepath.Dir(f.rel); dir != "."; dir = filepath.Dir(dir) {
			if key, ok := byRel[dir]; ok {
				return nil, nil, errors.Newf(errors.ErrInvalidPath,
					"path %q is declared as a file and as the parent of %q", key, byRel[f.rel]).
					WithDetail("path", key)
			}
			keepDirs[dir] = true
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].rel < files[j].rel })
	return files, keepDirs, nil
}

// cleanRelPath returns key as a clean, native relative path that stays
// inside the output root.
func cleanRelPath(key string) (string, error) {
	native := filepath.FromSlash(key)
	if key == "" || strings.HasPrefix(key, "/") || filepath.IsAbs(native) {
		return "", errors.Newf(errors.ErrInvalidPath,
			"path %q must be relative to the output root", key).
			WithDetail("path", key)
	}
	rel := filepath.Clean(native)
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Newf(errors.ErrInvalidPath,
			"path %q is outside the output root", key).
			WithDetail("path", key)
	}
	return rel, nil
}
