// Package config loads and saves the persistent application settings.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Environment variables that override the settings file.
const (
	EnvLogFile  = "CATHEDRAL_LOG_FILE"
	EnvLogLevel = "CATHEDRAL_LOG_LEVEL"
)

// AppConfig stores persistent application settings
type AppConfig struct {
	Theme        string `json:"theme"` // "dark" or "light"
	LogFile      string `json:"log_file"`
	LogLevel     string `json:"log_level"`
	ShowGrid     bool   `json:"show_grid"`
	WindowWidth  int    `json:"window_width"`
	WindowHeight int    `json:"window_height"`
}

// Default returns the settings used when no file exists.
func Default() *AppConfig {
	return &AppConfig{
		Theme:        "dark",
		LogFile:      "cathedral.log",
		LogLevel:     "info",
		ShowGrid:     true,
		WindowWidth:  1200,
		WindowHeight: 800,
	}
}

// Path returns the default config file location, creating its directory.
func Path() (string, error) {
	var configDir string
	// Use platform-appropriate config directory
	if appData := os.Getenv("APPDATA"); appData != "" {
		// Windows: use %APPDATA%\Cathedral
		configDir = filepath.Join(appData, "Cathedral")
	} else if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		configDir = filepath.Join(xdg, "cathedral")
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(homeDir, ".config", "cathedral")
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// Load reads the settings at path, or at Path() when path is empty. A
// missing file yields Default(). Environment overrides are applied last.
func Load(path string) (*AppConfig, error) {
	if path == "" {
		p, err := Path()
		if err != nil {
			cfg := Default()
			cfg.ApplyEnv()
			return cfg, err
		}
		path = p
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, err
	default:
		// Fields absent from the file keep their defaults.
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	cfg.ApplyEnv()
	return cfg, nil
}

// Save writes cfg to path, or to Path() when path is empty.
func Save(path string, cfg *AppConfig) error {
	if path == "" {
		p, err := Path()
		if err != nil {
			return err
		}
		path = p
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides fields from CATHEDRAL_* environment variables.
func (c *AppConfig) ApplyEnv() {
	if v := os.Getenv(EnvLogFile); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}
