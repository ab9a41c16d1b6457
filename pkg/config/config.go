package config

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/genout/pkg/types"
	"github.com/pelletier/go-toml/v2"
)

// Executor names accepted by sync.executor
const (
	ExecutorFS      = "fs"
	ExecutorSynthfs = "synthfs"
)

// Config is the complete genout configuration
type Config struct {
	Workspace Workspace               `koanf:"workspace" toml:"workspace"`
	Output    Output                  `koanf:"output" toml:"output"`
	Targets   map[string]TargetConfig `koanf:"targets" toml:"targets,omitempty"`
	Sync      Sync                    `koanf:"sync" toml:"sync"`
	Documents Documents               `koanf:"documents" toml:"documents"`

	// ProjectDir is the directory the configuration was loaded for. Relative
	// paths are resolved against it.
	ProjectDir string `koanf:"-" toml:"-"`
}

// Workspace holds the candidate workspace roots
type Workspace struct {
	Roots []string `koanf:"roots" toml:"roots"`
}

// Output controls where targets are written
type Output struct {
	Base    string `koanf:"base" toml:"base"`
	Default string `koanf:"default" toml:"default"`
}

// TargetConfig declares one named target
type TargetConfig struct {
	Output    string `koanf:"output" toml:"output,omitempty"`
	Overwrite bool   `koanf:"overwrite" toml:"overwrite"`
	Clean     bool   `koanf:"clean" toml:"clean"`
}

// Sync configures the synchronizer
type Sync struct {
	Concurrency int    `koanf:"concurrency" toml:"concurrency"`
	Executor    string `koanf:"executor" toml:"executor"`
	DryRun      bool   `koanf:"dryrun" toml:"dryrun"`
}

// Documents configures generation document discovery
type Documents struct {
	Patterns []string `koanf:"patterns" toml:"patterns"`
}

// TargetNames returns the configured target names in sorted order
func (c *Config) TargetNames() []string {
	names := make([]string, 0, len(c.Targets))
	for name := range c.Targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Target returns the named target as registered with the content manager
func (c *Config) Target(name string) types.Target {
	if name == types.DefaultTargetName {
		return types.DefaultTarget()
	}
	t := c.Targets[name]
	return types.Target{
		Name:             name,
		DefaultOverwrite: t.Overwrite,
		Clean:            t.Clean,
	}
}

// OutputFor returns the output root of the named target. A target without
// an output writes to its lower-cased name under output.base.
func (c *Config) OutputFor(name string) string {
	var out string
	if name == types.DefaultTargetName {
		out = c.Output.Default
	} else {
		out = c.Targets[name].Output
		if out == "" {
			out = strings.ToLower(name)
		}
	}
	if filepath.IsAbs(out) {
		return filepath.Clean(out)
	}
	return filepath.Join(c.Output.Base, out)
}

// TOML renders the configuration as a TOML document
func (c *Config) TOML() ([]byte, error) {
	return toml.Marshal(c)
}
