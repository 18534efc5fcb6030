package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/fsnotify/fsnotify"
	"github.com/tischda/chordkeys"
	"gopkg.in/yaml.v3"
)

// ConfigFile is the layout of the binding file.
type ConfigFile struct {
	Bindings []BindingConfig `toml:"bindings" yaml:"bindings"`
}

// BindingConfig binds a chord sequence to a command.
type BindingConfig struct {
	Sequence string   `toml:"sequence" yaml:"sequence"`
	Action   []string `toml:"action" yaml:"action"`
	Once     bool     `toml:"once" yaml:"once"`
}

// Hotkey is a validated binding, ready to be registered.
type Hotkey struct {
	ID       int                 // Position in the binding file, starting at 1
	Sequence string              // Canonical form of the sequence
	Chords   []chordkeys.Binding // Parsed chords
	Action   []string            // Command to execute
	Once     bool                // Unregister after the first completion
}

// shouldReloadConfig reports whether an fsnotify event warrants a config reload.
//
// Parameters:
//   - watched: Cleaned paths of the config file (the path itself and, for a symlink, its target).
//   - event: Filesystem event to evaluate.
//
// Returns:
//   - bool: True if the event should trigger a reload.
func shouldReloadConfig(watched []string, event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	name := filepath.Clean(event.Name)
	for _, p := range watched {
		if name == p {
			return true
		}
		// Some editors write via temp + rename, resulting in partial paths.
		if filepath.Base(name) == filepath.Base(p) {
			return true
		}
	}
	return false
}

// decodeConfig reads a binding file. Files ending in .yaml or .yml are
// decoded as YAML, everything else as TOML.
//
// Parameters:
//   - path: Path to the binding file.
//
// Returns:
//   - *ConfigFile: The decoded file.
//   - error: Non-nil if the file cannot be read or decoded.
func decodeConfig(path string) (*ConfigFile, error) {
	var config ConfigFile

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		if _, err := toml.DecodeFile(path, &config); err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
	}
	return &config, nil
}

// compileBindings validates every binding of config.
//
// Returns:
//   - []Hotkey: Valid bindings in file order.
//   - []error: One error per rejected binding.
func compileBindings(config *ConfigFile) ([]Hotkey, []error) {
	var hotkeys []Hotkey
	var errs []error

	for i, binding := range config.Bindings {
		chords, err := chordkeys.ParseSequence(binding.Sequence)
		if err != nil {
			errs = append(errs, fmt.Errorf("binding %d: %w", i+1, err))
			continue
		}
		if len(binding.Action) == 0 {
			errs = append(errs, fmt.Errorf("binding %d (%s): empty action", i+1, binding.Sequence))
			continue
		}
		hotkeys = append(hotkeys, Hotkey{
			ID:       i + 1,
			Sequence: chordkeys.FormatSequence(chords),
			Chords:   chords,
			Action:   binding.Action,
			Once:     binding.Once,
		})
	}
	return hotkeys, errs
}

// loadConfig reads a binding file and converts it to a list of hotkeys.
// Invalid bindings are logged and skipped.
//
// Parameters:
//   - path: Path to the binding file.
//
// Returns:
//   - []Hotkey: Parsed hotkeys in file order.
//   - error: Non-nil if the file cannot be decoded.
func loadConfig(path string) ([]Hotkey, error) {
	config, err := decodeConfig(path)
	if err != nil {
		return nil, err
	}
	hotkeys, errs := compileBindings(config)
	for _, err := range errs {
		logger.Printf("Skipping %v", err)
	}
	return hotkeys, nil
}
