package synchronizer

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/arthur-debert/genout/pkg/errors"
	"github.com/arthur-debert/genout/pkg/filesystem"
	"github.com/arthur-debert/genout/pkg/logging"
	"github.com/arthur-debert/genout/pkg/types"
	"github.com/rs/zerolog"
)

// ContentSource provides the targets and generated content to synchronize.
// content.Manager implements it.
type ContentSource interface {
	ResolveTarget(name string) (types.Target, error)
	GeneratedContent(name string) (types.GeneratedContent, error)
}

// Option configures a Synchronizer
type Option func(*Synchronizer)

// WithFS sets the filesystem plans are computed against and, unless an
// executor is given, applied to
func WithFS(fs types.FS) Option {
	return func(s *Synchronizer) {
		s.fs = fs
	}
}

// WithExecutor replaces the default FSExecutor
func WithExecutor(executor Executor) Option {
	return func(s *Synchronizer) {
		s.executor = executor
	}
}

// WithConcurrency limits the number of files the default executor writes in
// parallel
func WithConcurrency(n int) Option {
	return func(s *Synchronizer) {
		s.concurrency = n
	}
}

// WithDryRun makes Sync compute and report plans without applying them
func WithDryRun(dryRun bool) Option {
	return func(s *Synchronizer) {
		s.dryRun = dryRun
	}
}

// rootClaim records that a target synced into an output root
type rootClaim struct {
	root   string
	target string
	clean  bool
}

// Synchronizer reconciles output roots with targets' generated content. It
// remembers which target used which root, and refuses to let a clean target
// share its root with another target.
type Synchronizer struct {
	fs          types.FS
	executor    Executor
	concurrency int
	dryRun      bool

	mu     sync.Mutex
	claims []rootClaim

	logger zerolog.Logger
}

// New creates a Synchronizer. Without options it works on the OS
// filesystem with an FSExecutor.
func New(opts ...Option) *Synchronizer {
	s := &Synchronizer{
		concurrency: DefaultConcurrency,
		logger:      logging.GetLogger("synchronizer"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.fs == nil {
		s.fs = filesystem.NewOS()
	}
	if s.executor == nil {
		s.executor = NewFSExecutor(s.fs, s.concurrency)
	}
	return s
}

// Sync reconciles root with the content of the named target of src
func (s *Synchronizer) Sync(src ContentSource, targetName, root string) (*Report, error) {
	target, content, err := load(src, targetName)
	if err != nil {
		return nil, err
	}
	return s.SyncTarget(target, content, root)
}

// SyncTarget reconciles root with content:
//   - missing directories are created,
//   - new files are written, and existing ones rewritten only when their
//     record allows overwriting and the content differs,
//   - for a clean target, anything under root that is not declared is
//     removed once all writes are done.
//
// The first error aborts the sync; files already written stay on disk.
func (s *Synchronizer) SyncTarget(target types.Target, content types.GeneratedContent, root string) (*Report, error) {
	if root == "" {
		return nil, errors.New(errors.ErrInvalidInput, "output root cannot be empty").
			WithDetail("target", target.Name)
	}
	logger := s.logger.With().Str("target", target.Name).Logger()
	defer logging.LogOperationStart(logger, "sync")()

	plan, err := s.planner().plan(target, content, root)
	if err != nil {
		return nil, err
	}
	// Only a plan that can be applied claims the root
	if err := s.claim(target, root); err != nil {
		return nil, err
	}

	if s.dryRun {
		s.logPlan(plan)
		return NewReport(plan, true), nil
	}

	if err := s.executor.Execute(plan); err != nil {
		s.logger.Error().
			Err(err).
			Str("target", target.Name).
			Str("root", root).
			Msg("Sync failed")
		return nil, err
	}

	report := NewReport(plan, false)
	s.logger.Info().
		Str("target", target.Name).
		Str("root", root).
		Int("created", len(report.Created)).
		Int("updated", len(report.Updated)).
		Int("unchanged", len(report.Unchanged)).
		Int("preserved", len(report.Preserved)).
		Int("removed", len(report.Removed)).
		Msg("Target synchronized")
	return report, nil
}

// Plan computes the operations Sync would apply, without claiming root
func (s *Synchronizer) Plan(src ContentSource, targetName, root string) (*Plan, error) {
	target, content, err := load(src, targetName)
	if err != nil {
		return nil, err
	}
	if root == "" {
		return nil, errors.New(errors.ErrInvalidInput, "output root cannot be empty").
			WithDetail("target", target.Name)
	}
	return s.planner().plan(target, content, root)
}

func (s *Synchronizer) planner() *planner {
	return &planner{fs: s.fs, logger: s.logger}
}

func load(src ContentSource, targetName string) (types.Target, types.GeneratedContent, error) {
	target, err := src.ResolveTarget(targetName)
	if err != nil {
		return types.Target{}, nil, err
	}
	content, err := src.GeneratedContent(target.Name)
	if err != nil {
		return types.Target{}, nil, err
	}
	return target, content, nil
}

// claim records that target syncs into root. Roots overlap when one
// contains the other; overlapping roots are refused as soon as either
// target is clean.
func (s *Synchronizer) claim(target types.Target, root string) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInvalidPath, "failed to resolve %s", root).
			WithDetail("path", root)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.claims {
		if c.target == target.Name || !overlaps(abs, c.root) {
			continue
		}
		if target.Clean || c.clean {
			return errors.Newf(errors.ErrSharedCleanRoot,
				"target %q cannot sync into %s: it overlaps %s used by target %q and clean targets need a dedicated output root",
				target.Name, abs, c.root, c.target).
				WithDetails(map[string]interface{}{
					"target":      target.Name,
					"root":        abs,
					"otherTarget": c.target,
					"otherRoot":   c.root,
				})
		}
	}

	for _, c := range s.claims {
		if c.target == target.Name && c.root == abs {
			return nil
		}
	}
	s.claims = append(s.claims, rootClaim{root: abs, target: target.Name, clean: target.Clean})
	return nil
}

func overlaps(a, b string) bool {
	return isPathWithin(a, b) || isPathWithin(b, a)
}

// isPathWithin checks if a path is within a parent directory, or is it
func isPathWithin(path, parent string) bool {
	rel, err := filepath.Rel(filepath.Clean(parent), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func (s *Synchronizer) logPlan(plan *Plan) {
	logger := s.logger.With().
		Str("target", plan.Target.Name).
		Str("root", plan.Root).
		Logger()

	if plan.CreateRoot {
		logger.Info().Str("path", plan.Root).Msg("Would create directory")
	}
	for _, op := range plan.Operations() {
		switch op.Type {
		case OperationCreateDir:
			logger.Info().Str("path", op.FullPath).Msg("Would create directory")
		case OperationCreateFile:
			logger.Info().Str("path", op.FullPath).Int("contentLen", len(op.Content)).Msg("Would create file")
		case OperationUpdateFile:
			logger.Info().Str("path", op.FullPath).Int("contentLen", len(op.Content)).Msg("Would update file")
		case OperationRemoveFile, OperationRemoveDir:
			logger.Info().Str("path", op.FullPath).Msg("Would remove")
		default:
			logger.Debug().Str("path", op.FullPath).Str("operation", string(op.Type)).Msg("Would leave file untouched")
		}
	}
}
