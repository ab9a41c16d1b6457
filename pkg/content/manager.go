package content

import (
	"sync"

	"github.com/arthur-debert/genout/pkg/errors"
	"github.com/arthur-debert/genout/pkg/logging"
	"github.com/arthur-debert/genout/pkg/registry"
	"github.com/arthur-debert/genout/pkg/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Manager is the generated-content registry of one generation session.
// It is safe for concurrent use: target registration and every
// check-and-insert of the conflict resolver run under one lock.
type Manager struct {
	mu      sync.Mutex
	targets registry.Registry[types.Target]
	content map[string]types.GeneratedContent

	workspaceRoots []string
	sessionID      string
	logger         zerolog.Logger
}

// NewManager creates a session with only the implicit DEFAULT target.
// workspaceRoots are the candidate roots used by HandleFor when a call does
// not supply its own.
func NewManager(workspaceRoots ...string) *Manager {
	sessionID := uuid.NewString()
	m := &Manager{
		targets:        registry.New[types.Target](),
		content:        make(map[string]types.GeneratedContent),
		workspaceRoots: append([]string(nil), workspaceRoots...),
		sessionID:      sessionID,
		logger: logging.GetLogger("content.manager").With().
			Str("session", sessionID).
			Logger(),
	}

	def := types.DefaultTarget()
	registry.MustRegister(m.targets, def.Name, def)
	m.content[def.Name] = make(types.GeneratedContent)

	return m
}

// SessionID identifies this generation session in logs
func (m *Manager) SessionID() string {
	return m.sessionID
}

// WorkspaceRoots returns the session's candidate workspace roots
func (m *Manager) WorkspaceRoots() []string {
	return append([]string(nil), m.workspaceRoots...)
}

// AddTarget registers a named target with its overwrite default and clean
// behavior.
func (m *Manager) AddTarget(name string, defaultOverwrite, clean bool) error {
	return m.RegisterTarget(types.Target{
		Name:             name,
		DefaultOverwrite: defaultOverwrite,
		Clean:            clean,
	})
}

// RegisterTarget registers target and creates its empty content map. The
// name must be new for the session, DEFAULT included.
func (m *Manager) RegisterTarget(target types.Target) error {
	if target.Name == "" {
		return errors.New(errors.ErrInvalidInput, "target name cannot be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.targets.Has(target.Name) {
		return errors.Newf(errors.ErrDuplicateTarget,
			"target %q has already been added", target.Name).
			WithDetail("target", target.Name)
	}
	if err := m.targets.Register(target.Name, target); err != nil {
		return err
	}
	m.content[target.Name] = make(types.GeneratedContent)

	m.logger.Debug().
		Str("target", target.Name).
		Bool("defaultOverwrite", target.DefaultOverwrite).
		Bool("clean", target.Clean).
		Int("targets", m.targets.Count()).
		Msg("Target registered")
	return nil
}

// ResolveTarget returns the target registered under name, or DEFAULT when
// name is empty.
func (m *Manager) ResolveTarget(name string) (types.Target, error) {
	if name == "" {
		name = types.DefaultTargetName
	}
	target, err := m.targets.Get(name)
	if err != nil {
		return types.Target{}, errors.Wrapf(err, errors.ErrUnknownTarget,
			"target %q is not registered", name).
			WithDetail("target", name)
	}
	return target, nil
}

// Targets returns every registered target, DEFAULT first, then in
// registration order.
func (m *Manager) Targets() []types.Target {
	names := m.targets.Names()
	targets := make([]types.Target, 0, len(names))
	for _, name := range names {
		targets = append(targets, registry.MustGet(m.targets, name))
	}
	return targets
}

// GeneratedContent returns a snapshot of the content declared for the named
// target (DEFAULT when name is empty).
func (m *Manager) GeneratedContent(name string) (types.GeneratedContent, error) {
	target, err := m.ResolveTarget(name)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.content[target.Name].Clone(), nil
}

// CreateFile declares path with content in the target selected by opts,
// attributing the record to source. It is the write path behind every
// Handle.CreateFile call.
func (m *Manager) CreateFile(path, content, source string, opts types.FileOptions) error {
	if path == "" {
		return errors.New(errors.ErrInvalidInput, "file path cannot be empty").
			WithDetail("source", source)
	}

	target, err := m.ResolveTarget(opts.TargetName())
	if err != nil {
		return err
	}
	overwrite := opts.ResolveOverwrite(target.DefaultOverwrite)

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.declare(target.Name, path, content, overwrite, source)
}
