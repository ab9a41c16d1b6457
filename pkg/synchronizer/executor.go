package synchronizer

import (
	"context"
	"os"
	"path/filepath"

	"github.com/arthur-debert/genout/pkg/errors"
	"github.com/arthur-debert/genout/pkg/logging"
	"github.com/arthur-debert/genout/pkg/types"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	dirMode  os.FileMode = 0755
	fileMode os.FileMode = 0644
)

// DefaultConcurrency is the number of files written in parallel when no
// limit is configured
const DefaultConcurrency = 4

// Executor applies a Plan to disk
type Executor interface {
	Execute(plan *Plan) error
}

// FSExecutor applies plans through a types.FS. Directories are created
// first, files are then written in parallel, and removals run last, one at a
// time, once every write has completed.
type FSExecutor struct {
	fs          types.FS
	concurrency int
	logger      zerolog.Logger
}

// NewFSExecutor creates an executor writing at most concurrency files at a
// time. Values below 1 mean one.
func NewFSExecutor(fs types.FS, concurrency int) *FSExecutor {
	if concurrency < 1 {
		concurrency = 1
	}
	return &FSExecutor{
		fs:          fs,
		concurrency: concurrency,
		logger:      logging.GetLogger("synchronizer.fs"),
	}
}

// Execute applies plan, stopping at the first error. Writes already made
// are not rolled back.
func (e *FSExecutor) Execute(plan *Plan) error {
	if plan.CreateRoot {
		if err := e.mkdir(plan.Root); err != nil {
			return err
		}
	}
	for _, op := range plan.Dirs {
		if err := e.mkdir(op.FullPath); err != nil {
			return err
		}
	}

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(e.concurrency)
	for _, op := range plan.Writes() {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			return e.write(op)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, op := range plan.Removals {
		if err := e.remove(op); err != nil {
			return err
		}
	}
	return nil
}

func (e *FSExecutor) mkdir(path string) error {
	if err := e.fs.MkdirAll(path, dirMode); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", path).
			WithDetail("path", path)
	}
	e.logger.Debug().Str("path", path).Msg("Directory created")
	return nil
}

func (e *FSExecutor) write(op Operation) error {
	// Parents are normally created up front; this covers directories
	// removed between planning and execution.
	if err := e.fs.MkdirAll(filepath.Dir(op.FullPath), dirMode); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", filepath.Dir(op.FullPath)).
			WithDetail("path", filepath.Dir(op.FullPath))
	}
	if op.ReplaceLink {
		if err := e.fs.Remove(op.FullPath); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, errors.ErrFileRemove, "failed to remove link %s", op.FullPath).
				WithDetail("path", op.FullPath)
		}
	}
	if err := e.fs.WriteFile(op.FullPath, []byte(op.Content), fileMode); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", op.FullPath).
			WithDetail("path", op.FullPath)
	}
	e.logger.Debug().
		Str("path", op.FullPath).
		Str("operation", string(op.Type)).
		Int("bytes", len(op.Content)).
		Msg("File written")
	return nil
}

func (e *FSExecutor) remove(op Operation) error {
	if err := e.fs.Remove(op.FullPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrFileRemove, "failed to remove %s", op.FullPath).
			WithDetail("path", op.FullPath)
	}
	e.logger.Debug().
		Str("path", op.FullPath).
		Str("operation", string(op.Type)).
		Msg("Removed")
	return nil
}
