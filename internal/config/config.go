// Package config loads the YAML application config, separate from the
// per-user settings record kept in storage.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/daypilot/internal/constants"
	"github.com/julianstephens/daypilot/internal/utils"
)

// NotifyConfig controls reminder delivery to the tray app.
type NotifyConfig struct {
	// LeadMinutes is how long before an event's start the reminder fires.
	LeadMinutes int `yaml:"lead_minutes"`
	// Schedule is the cron expression used by 'notify --watch'.
	Schedule string `yaml:"schedule"`
}

// APIConfig controls the local HTTP API.
type APIConfig struct {
	Listen string `yaml:"listen"`
}

type Config struct {
	// Storage is a SQLite path, a .json file, :memory:, or a PostgreSQL URL
	// without a password.
	Storage string `yaml:"storage"`
	Debug   bool   `yaml:"debug"`
	// LogDir defaults to <config dir>/logs.
	LogDir string       `yaml:"log_dir,omitempty"`
	Notify NotifyConfig `yaml:"notify"`
	API    APIConfig    `yaml:"api"`
}

func DefaultConfig() *Config {
	return &Config{
		Storage: constants.DefaultDBPath,
		Notify: NotifyConfig{
			LeadMinutes: constants.DefaultNotifyLeadMin,
			Schedule:    constants.DefaultNotifySchedule,
		},
		API: APIConfig{
			Listen: constants.DefaultListenAddr,
		},
	}
}

// Normalize fills zero values with defaults so older or partial files work.
func (c *Config) Normalize() {
	if c.Storage == "" {
		c.Storage = constants.DefaultDBPath
	}
	if c.Notify.LeadMinutes < 0 {
		c.Notify.LeadMinutes = constants.DefaultNotifyLeadMin
	}
	if c.Notify.Schedule == "" {
		c.Notify.Schedule = constants.DefaultNotifySchedule
	}
	if c.API.Listen == "" {
		c.API.Listen = constants.DefaultListenAddr
	}
}

// Load reads the YAML file at path. On first run the file is created with
// defaults (0600).
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	path, err := utils.ExpandHome(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return cfg, nil
}

// Save writes cfg atomically with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	path, err := utils.ExpandHome(path)
	if err != nil {
		return err
	}

	cfg.Normalize()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return utils.WriteFileAtomic(path, data, 0o600)
}

// Dir returns the directory holding the config file.
func Dir(path string) string {
	expanded, err := utils.ExpandHome(path)
	if err != nil {
		return filepath.Dir(path)
	}
	return filepath.Dir(expanded)
}
