package synchronizer

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/genout/pkg/errors"
	"github.com/arthur-debert/genout/pkg/logging"
	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/core"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/arthur-debert/synthfs/pkg/synthfs/operations"
	"github.com/rs/zerolog"
)

// SynthfsExecutor applies plans on the OS filesystem as synthfs pipelines
// rooted at the plan's output root. Writes and file removals run as two
// separate pipelines so the clean pass only starts once every write
// succeeded.
type SynthfsExecutor struct {
	logger zerolog.Logger
}

// NewSynthfsExecutor creates a new synthfs-based executor
func NewSynthfsExecutor() *SynthfsExecutor {
	return &SynthfsExecutor{
		logger: logging.GetLogger("synchronizer.synthfs"),
	}
}

// Execute applies plan. Files being updated are removed before the write
// pipeline runs, since synthfs refuses to create over an existing file.
func (e *SynthfsExecutor) Execute(plan *Plan) error {
	root, err := filepath.Abs(plan.Root)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInvalidPath, "failed to resolve %s", plan.Root).
			WithDetail("path", plan.Root)
	}

	if plan.CreateRoot {
		if err := os.MkdirAll(root, dirMode); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", root).
				WithDetail("path", root)
		}
	}

	for _, op := range plan.Files {
		if op.Type != OperationUpdateFile {
			continue
		}
		e.logger.Debug().
			Str("path", op.FullPath).
			Msg("Removing existing file to allow update")
		if err := os.Remove(op.FullPath); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, errors.ErrFileRemove, "failed to remove %s", op.FullPath).
				WithDetail("path", op.FullPath)
		}
	}

	writes := make([]synthfs.Operation, 0, len(plan.Dirs)+len(plan.Files))
	for _, op := range plan.Dirs {
		writes = append(writes, e.convertCreateDir(op))
	}
	for _, op := range plan.Writes() {
		writes = append(writes, e.convertWriteFile(op))
	}
	if err := e.run(root, writes); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write files under %s", root).
			WithDetail("path", root)
	}

	removals := make([]synthfs.Operation, 0, len(plan.Removals))
	for _, op := range plan.Removals {
		if op.Type == OperationRemoveFile {
			removals = append(removals, e.convertDelete(op))
		}
	}
	if err := e.run(root, removals); err != nil {
		return errors.Wrapf(err, errors.ErrFileRemove, "failed to remove stale files under %s", root).
			WithDetail("path", root)
	}

	// Emptied directories go last, in plan order (children first).
	for _, op := range plan.Removals {
		if op.Type != OperationRemoveDir {
			continue
		}
		if err := os.Remove(op.FullPath); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, errors.ErrFileRemove, "failed to remove %s", op.FullPath).
				WithDetail("path", op.FullPath)
		}
	}
	return nil
}

func (e *SynthfsExecutor) run(root string, ops []synthfs.Operation) error {
	if len(ops) == 0 {
		return nil
	}

	pipeline := synthfs.NewMemPipeline()
	for _, op := range ops {
		if err := pipeline.Add(op); err != nil {
			return err
		}
	}

	e.logger.Debug().
		Str("root", root).
		Int("operationCount", len(ops)).
		Msg("Executing pipeline")

	result := synthfs.NewExecutor().Run(context.Background(), pipeline, filesystem.NewOSFileSystem(root))
	if result.GetError() != nil {
		e.logger.Error().Err(result.GetError()).Str("root", root).Msg("Pipeline execution failed")
		return result.GetError()
	}
	return nil
}

func (e *SynthfsExecutor) convertCreateDir(op Operation) synthfs.Operation {
	relPath := filepath.FromSlash(op.Path)
	createOp := operations.NewCreateDirectoryOperation(core.OperationID(fmt.Sprintf("create-dir-%s", op.Path)), relPath)
	createOp.SetItem(&directoryItem{
		path: relPath,
		mode: dirMode,
	})
	return synthfs.NewOperationsPackageAdapter(createOp)
}

func (e *SynthfsExecutor) convertWriteFile(op Operation) synthfs.Operation {
	relPath := filepath.FromSlash(op.Path)
	createOp := operations.NewCreateFileOperation(core.OperationID(fmt.Sprintf("write-file-%s", op.Path)), relPath)
	createOp.SetItem(&fileItem{
		path:    relPath,
		content: []byte(op.Content),
		mode:    fileMode,
	})
	return synthfs.NewOperationsPackageAdapter(createOp)
}

func (e *SynthfsExecutor) convertDelete(op Operation) synthfs.Operation {
	relPath := filepath.FromSlash(op.Path)
	deleteOp := operations.NewDeleteOperation(core.OperationID(fmt.Sprintf("delete-%s", op.Path)), relPath)
	return synthfs.NewOperationsPackageAdapter(deleteOp)
}

// fileItem is the item synthfs writes for a create file operation
type fileItem struct {
	path    string
	content []byte
	mode    fs.FileMode
}

func (f *fileItem) Path() string       { return f.path }
func (f *fileItem) Type() string       { return "file" }
func (f *fileItem) Content() []byte    { return f.content }
func (f *fileItem) Mode() fs.FileMode  { return f.mode }
func (f *fileItem) IsDir() bool        { return false }
func (f *fileItem) ModTime() time.Time { return time.Now() }
func (f *fileItem) Size() int64        { return int64(len(f.content)) }

type directoryItem struct {
	path string
	mode fs.FileMode
}

func (d *directoryItem) Path() string       { return d.path }
func (d *directoryItem) Type() string       { return "directory" }
func (d *directoryItem) Mode() fs.FileMode  { return d.mode }
func (d *directoryItem) IsDir() bool        { return true }
func (d *directoryItem) ModTime() time.Time { return time.Now() }
func (d *directoryItem) Size() int64        { return 0 }
