package core

import (
	"path/filepath"
	"time"

	"github.com/arthur-debert/genout/pkg/config"
	"github.com/arthur-debert/genout/pkg/content"
	"github.com/arthur-debert/genout/pkg/errors"
	"github.com/arthur-debert/genout/pkg/filesystem"
	"github.com/arthur-debert/genout/pkg/logging"
	"github.com/arthur-debert/genout/pkg/manifest"
	"github.com/arthur-debert/genout/pkg/synchronizer"
	"github.com/arthur-debert/genout/pkg/types"
)

// Mode selects what a session does once generation passes are done
type Mode string

const (
	// ModeSync writes every target to disk (or plans it, when dry running)
	ModeSync Mode = "sync"
	// ModeVerify compares every target with disk without writing
	ModeVerify Mode = "verify"
)

// GenerateOptions contains options for running a generation session
type GenerateOptions struct {
	ProjectDir string
	ConfigFile string
	// Documents to generate from. Empty means discovering them under the
	// workspace roots.
	Documents []string
	Mode      Mode
	// DryRun and Concurrency override the configuration when set
	DryRun      bool
	Concurrency int
	// FileSystem defaults to the OS filesystem
	FileSystem types.FS
}

// TargetResult is the outcome of one target
type TargetResult struct {
	Target types.Target
	Root   string
	Files  int
	// Report is set in sync mode
	Report *synchronizer.Report
	// Drift is set in verify mode
	Drift *synchronizer.Drift
}

// SessionResult is the outcome of a generation session
type SessionResult struct {
	SessionID string
	Mode      Mode
	DryRun    bool
	Documents []string
	Targets   []TargetResult
	Duration  time.Duration
}

// HasDrift reports whether any verified target is out of date
func (r *SessionResult) HasDrift() bool {
	for _, t := range r.Targets {
		if t.Drift != nil && t.Drift.HasDrift() {
			return true
		}
	}
	return false
}

// DriftError returns the DRIFT error of the first out-of-date target
func (r *SessionResult) DriftError() error {
	for _, t := range r.Targets {
		if t.Drift != nil {
			if err := t.Drift.Err(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Generate runs one generation session
func Generate(opts GenerateOptions) (*SessionResult, error) {
	start := time.Now()

	if opts.Mode == "" {
		opts.Mode = ModeSync
	}
	fsys := opts.FileSystem
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	m, err := NewManager(cfg)
	if err != nil {
		return nil, err
	}

	logger := logging.WithFields(map[string]interface{}{
		"component": "core.generate",
		"session":   m.SessionID(),
	})
	defer logging.LogOperationStart(logger, "generate")()

	logger.Info().
		Str("mode", string(opts.Mode)).
		Str("projectDir", cfg.ProjectDir).
		Bool("dryRun", cfg.Sync.DryRun).
		Msg("Starting generation session")

	docs, err := documents(fsys, cfg, opts.Documents)
	if err != nil {
		return nil, err
	}

	// Step 1: run every generation pass
	for _, path := range docs {
		doc, err := manifest.Load(fsys, path)
		if err != nil {
			return nil, err
		}
		if err := manifest.Generate(m.HandleFor(doc.Input()), fsys); err != nil {
			logger.Error().Err(err).Str("document", path).Msg("Generation pass failed")
			return nil, err
		}
	}

	// Step 2: materialize every target
	s := newSynchronizer(cfg, fsys)
	result := &SessionResult{
		SessionID: m.SessionID(),
		Mode:      opts.Mode,
		DryRun:    cfg.Sync.DryRun,
		Documents: docs,
	}
	for _, target := range m.Targets() {
		generated, err := m.GeneratedContent(target.Name)
		if err != nil {
			return nil, err
		}
		// Only a clean target has work to do without content
		if len(generated) == 0 && !target.Clean {
			continue
		}

		tr := TargetResult{Target: target, Root: cfg.OutputFor(target.Name), Files: len(generated)}
		switch opts.Mode {
		case ModeVerify:
			tr.Drift, err = s.Verify(m, target.Name, tr.Root)
		default:
			tr.Report, err = s.Sync(m, target.Name, tr.Root)
		}
		if err != nil {
			return nil, err
		}
		result.Targets = append(result.Targets, tr)
	}

	result.Duration = time.Since(start)
	logger.Info().
		Int("documents", len(docs)).
		Int("targets", len(result.Targets)).
		Dur("duration", result.Duration).
		Msg("Generation session complete")
	return result, nil
}

// NewManager creates the content manager of a session with every target of
// cfg registered, in name order
func NewManager(cfg *config.Config) (*content.Manager, error) {
	m := content.NewManager(cfg.Workspace.Roots...)
	for _, name := range cfg.TargetNames() {
		if err := m.RegisterTarget(cfg.Target(name)); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func loadConfig(opts GenerateOptions) (*config.Config, error) {
	overrides := map[string]interface{}{}
	if opts.DryRun {
		overrides["sync.dryrun"] = true
	}
	if opts.Concurrency > 0 {
		overrides["sync.concurrency"] = opts.Concurrency
	}
	return config.Load(config.LoadOptions{
		ProjectDir: opts.ProjectDir,
		ConfigFile: opts.ConfigFile,
		Overrides:  overrides,
	})
}

// documents returns the explicit documents as absolute paths, or the ones
// discovered under the workspace roots
func documents(fsys types.FS, cfg *config.Config, explicit []string) ([]string, error) {
	if len(explicit) == 0 {
		return manifest.Discover(fsys, cfg.Workspace.Roots, cfg.Documents.Patterns)
	}
	docs := make([]string, 0, len(explicit))
	for _, doc := range explicit {
		abs, err := filepath.Abs(doc)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidPath, "failed to resolve document %s", doc).
				WithDetail("document", doc)
		}
		docs = append(docs, abs)
	}
	return docs, nil
}

func newSynchronizer(cfg *config.Config, fsys types.FS) *synchronizer.Synchronizer {
	opts := []synchronizer.Option{
		synchronizer.WithFS(fsys),
		synchronizer.WithConcurrency(cfg.Sync.Concurrency),
		synchronizer.WithDryRun(cfg.Sync.DryRun),
	}
	if cfg.Sync.Executor == config.ExecutorSynthfs {
		opts = append(opts, synchronizer.WithExecutor(synchronizer.NewSynthfsExecutor()))
	}
	return synchronizer.New(opts...)
}
