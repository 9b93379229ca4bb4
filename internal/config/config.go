// Package config loads the optional cockpit configuration file.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/openclaw/dev-cockpit/internal/core/apierr"
)

// Config holds file-system locations and the gateway listen address.
// Command-line flags override anything set here.
type Config struct {
	Registry  string   `yaml:"registry"`
	AgentsDir string   `yaml:"agentsDir"`
	ScanRoots []string `yaml:"scanRoots"`
	ScanBase  string   `yaml:"scanBase"`
	Listen    string   `yaml:"listen"`
	LogFile   string   `yaml:"logFile"`
}

// Default returns the conventional layout under the user's home directory.
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Registry:  filepath.Join(home, ".openclaw", "cockpit", "projects.json"),
		AgentsDir: filepath.Join(home, ".openclaw", "agents"),
		ScanRoots: []string{filepath.Join(home, "dev")},
		ScanBase:  home,
		Listen:    "127.0.0.1:7438",
		LogFile:   filepath.Join(home, ".openclaw", "cockpit", "logs", "app.log"),
	}
}

// DefaultPath is the conventional config file location.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".openclaw", "cockpit", "config.yaml")
}

// Load reads path and overlays it on the defaults. A missing file yields
// the defaults; malformed YAML is an Unavailable error.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, apierr.Wrap(err, apierr.CodeUnavailable, "cannot read config %s", path)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, apierr.Wrap(err, apierr.CodeUnavailable, "config %s is not valid YAML", path)
	}

	if file.Registry != "" {
		cfg.Registry = file.Registry
	}
	if file.AgentsDir != "" {
		cfg.AgentsDir = file.AgentsDir
	}
	if len(file.ScanRoots) > 0 {
		cfg.ScanRoots = file.ScanRoots
	}
	if file.ScanBase != "" {
		cfg.ScanBase = file.ScanBase
	}
	if file.Listen != "" {
		cfg.Listen = file.Listen
	}
	if file.LogFile != "" {
		cfg.LogFile = file.LogFile
	}
	return cfg, nil
}
