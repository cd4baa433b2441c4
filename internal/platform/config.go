package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/jotter/pkg/core"
)

// Config is the on-disk configuration read from jotter.yaml.
// Unset fields keep the library defaults.
type Config struct {
	Adapter    string `yaml:"adapter,omitempty"`
	Format     string `yaml:"format,omitempty"`
	TwoPhase   bool   `yaml:"two_phase,omitempty"`
	Versioning *bool  `yaml:"versioning,omitempty"`
	ReadOnly   bool   `yaml:"read_only,omitempty"`
	Quota      int    `yaml:"quota,omitempty"`
}

// LoadConfig reads jotter.yaml from dir. A missing file yields a zero Config.
func LoadConfig(dir string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(filepath.Join(dir, ConfigFileName))
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid %s: %w", ConfigFileName, err)
	}
	return cfg, nil
}

// SaveConfig writes cfg to dir/jotter.yaml.
func SaveConfig(dir string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, ConfigFileName), data, 0644)
}

// Options converts the configuration into functional options. Options
// passed after these override them.
func (c Config) Options() []Option {
	var opts []Option
	if c.Adapter != "" {
		opts = append(opts, WithAdapter(c.Adapter))
	}
	if c.Format != "" {
		opts = append(opts, WithFormat(c.Format))
	}
	if c.TwoPhase {
		opts = append(opts, WithCommitMode(core.CommitAfterPersist))
	}
	if c.Versioning != nil {
		opts = append(opts, WithVersioning(*c.Versioning))
	}
	if c.ReadOnly {
		opts = append(opts, WithReadOnly(true))
	}
	if c.Quota > 0 {
		opts = append(opts, WithQuota(c.Quota))
	}
	return opts
}
