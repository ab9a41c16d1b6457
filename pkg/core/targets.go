package core

import (
	"github.com/arthur-debert/genout/pkg/config"
	"github.com/arthur-debert/genout/pkg/types"
)

// TargetInfo describes a configured target and where it is written
type TargetInfo struct {
	Target types.Target
	Root   string
}

// ListTargets returns every target of the project, DEFAULT first, then in
// name order
func ListTargets(projectDir, configFile string) ([]TargetInfo, error) {
	cfg, err := config.Load(config.LoadOptions{ProjectDir: projectDir, ConfigFile: configFile})
	if err != nil {
		return nil, err
	}
	m, err := NewManager(cfg)
	if err != nil {
		return nil, err
	}

	targets := m.Targets()
	infos := make([]TargetInfo, 0, len(targets))
	for _, t := range targets {
		infos = append(infos, TargetInfo{Target: t, Root: cfg.OutputFor(t.Name)})
	}
	return infos, nil
}
