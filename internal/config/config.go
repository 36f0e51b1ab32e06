// Package config loads the optional portkey configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name inside the portkey directory.
const FileName = "config.yaml"

// SSHConfig controls how the launcher invokes ssh.
type SSHConfig struct {
	// StrictHostKeyChecking toggles ssh's host key verification. Off by
	// default to match the original behavior of password-based quick
	// connects.
	StrictHostKeyChecking bool `yaml:"strict_host_key_checking"`

	// ExtraArgs are appended verbatim to the ssh invocation.
	ExtraArgs []string `yaml:"extra_args"`
}

// HistoryConfig controls the local connection history.
type HistoryConfig struct {
	Disabled bool `yaml:"disabled"`
}

// Config is the parsed configuration file.
type Config struct {
	// VaultPath overrides the default vault file location.
	VaultPath string        `yaml:"vault_path"`
	SSH       SSHConfig     `yaml:"ssh"`
	History   HistoryConfig `yaml:"history"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{}
}

// Load reads the config file at path. A missing file is not an error; it
// yields the defaults. A present but unparsable file is an error, so typos
// do not silently fall back to defaults.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	if cfg.VaultPath != "" {
		cfg.VaultPath = expandHome(cfg.VaultPath)
	}
	return cfg, nil
}

// expandHome resolves a leading ~/ against the user home directory.
func expandHome(path string) string {
	if len(path) >= 2 && path[:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
