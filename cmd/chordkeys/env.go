package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/mitchellh/go-homedir"
)

// default binding file path
const defaultConfigPath = "~/.config/chordkeys.toml"

// envConfig holds the settings read from the environment.
type envConfig struct {
	// Binding file path; takes precedence over defaultConfigPath, not over --file.
	ConfigPath string `env:"CHORDKEYS_CONFIG"`

	// Log file path; stdout (or the status line while the terminal is in use) if empty.
	LogPath string `env:"CHORDKEYS_LOG"`
}

// loadEnv reads envConfig from the process environment.
func loadEnv() (envConfig, error) {
	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// resolveConfigPath picks the binding file path and expands a leading '~'.
//
// Parameters:
//   - flagPath: Value of the --file flag (its default if not set).
//   - flagSet: Whether --file was given on the command line.
//   - cfg: Settings read from the environment.
//
// Returns:
//   - string: The expanded path.
//   - error: Non-nil if the home directory cannot be determined.
func resolveConfigPath(flagPath string, flagSet bool, cfg envConfig) (string, error) {
	path := flagPath
	if !flagSet && cfg.ConfigPath != "" {
		path = cfg.ConfigPath
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("expand %s: %w", path, err)
	}
	return expanded, nil
}
