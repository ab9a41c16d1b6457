package config

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/genout/pkg/errors"
	"github.com/arthur-debert/genout/pkg/logging"
	"github.com/arthur-debert/genout/pkg/types"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read as configuration
const EnvPrefix = "GENOUT_"

// configFileNames are searched, in order, in the project directory
var configFileNames = []string{"genout.toml", ".genout.toml"}

// LoadOptions select the configuration sources
type LoadOptions struct {
	// ProjectDir is searched for genout.toml or .genout.toml. Defaults to
	// the working directory.
	ProjectDir string
	// ConfigFile, when set, is loaded instead of searching ProjectDir. It
	// must exist.
	ConfigFile string
	// Overrides are applied last, keyed by dotted path (e.g.
	// "sync.dryrun")
	Overrides map[string]interface{}
}

// Load reads the configuration from every layer and validates it
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")

	projectDir := opts.ProjectDir
	if projectDir == "" {
		projectDir = "."
	}
	projectDir, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to resolve project directory %s", opts.ProjectDir)
	}

	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. Project config file
	configPath, err := findConfigFile(projectDir, opts.ConfigFile)
	if err != nil {
		return nil, err
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", configPath).
				WithDetail("path", configPath)
		}
		logger.Debug().Str("path", configPath).Msg("Config file loaded")
	}

	// 3. Env vars
	err = k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	// Targets overwrite existing files unless they say otherwise
	for _, name := range k.MapKeys("targets") {
		key := "targets." + name + ".overwrite"
		if !k.Exists(key) {
			if err := k.Set(key, true); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to set default for %s", key)
			}
		}
	}

	// 5. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	cfg.ProjectDir = projectDir

	// 6. Post-process
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.resolvePaths()
	if err := cfg.checkCleanOutputs(); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("projectDir", cfg.ProjectDir).
		Strs("roots", cfg.Workspace.Roots).
		Strs("targets", cfg.TargetNames()).
		Msg("Configuration loaded")

	return &cfg, nil
}

func findConfigFile(projectDir, explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not found", explicit).
				WithDetail("path", explicit)
		}
		return explicit, nil
	}
	for _, name := range configFileNames {
		candidate := filepath.Join(projectDir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", nil
}

// Validate checks values that cannot be corrected silently. A concurrency
// below one is raised to one.
func (c *Config) Validate() error {
	if _, ok := c.Targets[types.DefaultTargetName]; ok {
		return errors.New(errors.ErrConfigValid,
			"target DEFAULT is implicit and cannot be configured; use output.default to set its directory").
			WithDetail("target", types.DefaultTargetName)
	}
	for name := range c.Targets {
		if name == "" {
			return errors.New(errors.ErrConfigValid, "target names cannot be empty")
		}
	}
	if c.Output.Default == "" {
		return errors.New(errors.ErrConfigValid, "output.default cannot be empty")
	}
	switch c.Sync.Executor {
	case ExecutorFS, ExecutorSynthfs:
	default:
		return errors.Newf(errors.ErrConfigValid,
			"unknown sync.executor %q (expected %q or %q)", c.Sync.Executor, ExecutorFS, ExecutorSynthfs).
			WithDetail("executor", c.Sync.Executor)
	}
	for _, pattern := range c.Documents.Patterns {
		if _, err := path.Match(pattern, ""); err != nil {
			return errors.Wrapf(err, errors.ErrConfigValid, "invalid document pattern %q", pattern).
				WithDetail("pattern", pattern)
		}
	}
	if c.Sync.Concurrency < 1 {
		c.Sync.Concurrency = 1
	}
	return nil
}

// checkCleanOutputs refuses a clean target whose output root is, or
// contains, the project directory or a workspace root. Its clean pass would
// delete the configuration and the generation documents.
func (c *Config) checkCleanOutputs() error {
	protected := append([]string{c.ProjectDir}, c.Workspace.Roots...)
	for _, name := range c.TargetNames() {
		if !c.Targets[name].Clean {
			continue
		}
		out := c.OutputFor(name)
		for _, p := range protected {
			if !isWithin(p, out) {
				continue
			}
			return errors.Newf(errors.ErrConfigValid,
				"clean target %s cannot write to %s: it contains %s", name, out, p).
				WithDetails(map[string]interface{}{
					"target": name,
					"output": out,
					"path":   p,
				})
		}
	}
	return nil
}

// isWithin reports whether path is dir or lies below it
func isWithin(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// resolvePaths makes the output base and workspace roots absolute, relative
// to the project directory. No roots means the project directory itself.
func (c *Config) resolvePaths() {
	c.Output.Base = c.abs(c.Output.Base)
	if len(c.Workspace.Roots) == 0 {
		c.Workspace.Roots = []string{c.ProjectDir}
		return
	}
	for i, root := range c.Workspace.Roots {
		c.Workspace.Roots[i] = c.abs(root)
	}
}

func (c *Config) abs(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(c.ProjectDir, p)
}
