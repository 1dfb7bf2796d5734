package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

const (
	// ConfigDir is the default config directory name.
	ConfigDir = ".huntdesk"
	// ConfigFile is the default config file name.
	ConfigFile = "config.json"
)

// ConfigPath returns the path to the config file. HUNTDESK_CONFIG overrides
// the file location, HUNTDESK_HOME the base directory.
func ConfigPath() (string, error) {
	if explicit := strings.TrimSpace(os.Getenv("HUNTDESK_CONFIG")); explicit != "" {
		if strings.HasPrefix(explicit, "~") {
			home, err := resolveHomeDir()
			if err != nil {
				return "", err
			}
			return filepath.Join(home, explicit[1:]), nil
		}
		return explicit, nil
	}
	home, err := resolveHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ConfigDir, ConfigFile), nil
}

func resolveHomeDir() (string, error) {
	if h := strings.TrimSpace(os.Getenv("HUNTDESK_HOME")); h != "" {
		if strings.HasPrefix(h, "~") {
			base, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			return filepath.Join(base, h[1:]), nil
		}
		return h, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return home, nil
}

// JournalPath returns the journal database path, defaulting to
// <home>/.huntdesk/journal.db when the config leaves it empty.
func JournalPath(cfg *Config) (string, error) {
	if p := strings.TrimSpace(cfg.Journal.Path); p != "" {
		return p, nil
	}
	home, err := resolveHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ConfigDir, "journal.db"), nil
}

// Load reads the config file (if present) over the defaults, then overlays
// environment variables per group.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	path, err := ConfigPath()
	if err != nil {
		return cfg, nil // Use defaults if we can't find config path
	}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}
	// If file doesn't exist, continue with defaults

	// Override with environment variables for each group
	envconfig.Process("HUNTDESK_TELEGRAM", &cfg.Telegram)
	envconfig.Process("HUNTDESK_ADMINS", &cfg.Admins)
	envconfig.Process("HUNTDESK_CONTENT", &cfg.Content)
	envconfig.Process("HUNTDESK_JOURNAL", &cfg.Journal)
	envconfig.Process("HUNTDESK_EXPORT", &cfg.Export)
	envconfig.Process("HUNTDESK_NOTIFY", &cfg.Notify)

	return cfg, nil
}

// Save writes the config as indented JSON to the default location.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
