// Package config loads the dosewatch configuration from defaults, an
// optional YAML file, and DOSEWATCH_-prefixed environment variables, in
// that order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/dosewatch/dosewatch/internal/reminder"
)

// Notifier backend names accepted in the config.
const (
	NotifierDesktop = "desktop"
	NotifierLog     = "log"
)

// Config is the daemon and CLI configuration.
type Config struct {
	API       APIConfig    `koanf:"api"`
	Daemon    DaemonConfig `koanf:"daemon"`
	Notifiers []string     `koanf:"notifiers"`
}

// APIConfig locates the external med-tracker service.
type APIConfig struct {
	BaseURL string `koanf:"base_url"`
	Timeout int    `koanf:"timeout"` // seconds
}

// DaemonConfig holds the daemon's local paths and surfaces.
type DaemonConfig struct {
	SocketPath   string `koanf:"socket_path"`
	WebAddr      string `koanf:"web_addr"`
	SweepExpr    string `koanf:"sweep_expr"`
	SettingsPath string `koanf:"settings_path"`
	HistoryPath  string `koanf:"history_path"`
}

// DefaultConfigPath is where Load looks when no explicit path is given.
func DefaultConfigPath() string {
	return filepath.Join(dataDir(), "config.yaml")
}

// DefaultSocketPath is the daemon control socket location.
func DefaultSocketPath() string {
	return filepath.Join(os.TempDir(), "dosewatch.sock")
}

func dataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".dosewatch"
	}
	return filepath.Join(home, ".dosewatch")
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"api": map[string]interface{}{
			"base_url": "http://localhost:8000/api",
			"timeout":  15,
		},
		"daemon": map[string]interface{}{
			"socket_path":   DefaultSocketPath(),
			"web_addr":      "localhost:8955",
			"sweep_expr":    reminder.DefaultSweepExpr,
			"settings_path": filepath.Join(dataDir(), "settings.json"),
			"history_path":  filepath.Join(dataDir(), "history.db"),
		},
		"notifiers": []string{NotifierDesktop, NotifierLog},
	}
}

// Load builds the configuration. configPath may be empty, in which case the
// default location is consulted; a missing file is not an error.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath == "" {
		configPath = DefaultConfigPath()
	}
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	// DOSEWATCH_API_BASE_URL -> api.base_url, etc.
	if err := k.Load(env.Provider("DOSEWATCH_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "DOSEWATCH_")
		s = strings.ToLower(s)
		return strings.Replace(s, "_", ".", 1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := reminder.ValidateSweepExpr(cfg.Daemon.SweepExpr); err != nil {
		return nil, err
	}
	for _, n := range cfg.Notifiers {
		if n != NotifierDesktop && n != NotifierLog {
			return nil, fmt.Errorf("unknown notifier backend %q", n)
		}
	}
	return &cfg, nil
}
