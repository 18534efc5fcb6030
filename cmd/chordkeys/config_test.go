package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/tischda/chordkeys"
)

func writeTemp(t *testing.T, name, contents string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("parses bindings", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, "chordkeys.toml", `
[[bindings]]
sequence = "S-C-x  C-s"
action = ["notify-send", "saved"]

[[bindings]]
sequence = "g g"
action = ["true"]
once = true
`)

		hotkeys, err := loadConfig(path)
		if err != nil {
			t.Fatalf("loadConfig: %v", err)
		}
		if len(hotkeys) != 2 {
			t.Fatalf("expected 2 hotkeys, got %d", len(hotkeys))
		}

		hk := hotkeys[0]
		if hk.ID != 1 {
			t.Fatalf("expected ID=1, got %d", hk.ID)
		}
		if hk.Sequence != "C-S-x C-s" {
			t.Fatalf("expected Sequence=%q, got %q", "C-S-x C-s", hk.Sequence)
		}
		want := chordkeys.Binding{Ctrl: true, Shift: true, Key: "x"}
		if len(hk.Chords) != 2 || hk.Chords[0] != want {
			t.Fatalf("unexpected Chords: %#v", hk.Chords)
		}
		if len(hk.Action) != 2 || hk.Action[0] != "notify-send" || hk.Action[1] != "saved" {
			t.Fatalf("unexpected Action: %#v", hk.Action)
		}
		if hk.Once {
			t.Fatalf("expected Once=false")
		}
		if !hotkeys[1].Once {
			t.Fatalf("expected Once=true for second binding")
		}
	})

	t.Run("parses yaml", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, "chordkeys.yaml", `
bindings:
  - sequence: "A-M-dash"
    action: ["echo", "dash"]
`)

		hotkeys, err := loadConfig(path)
		if err != nil {
			t.Fatalf("loadConfig: %v", err)
		}
		if len(hotkeys) != 1 {
			t.Fatalf("expected 1 hotkey, got %d", len(hotkeys))
		}
		if hotkeys[0].Sequence != "A-M-dash" {
			t.Fatalf("expected Sequence=%q, got %q", "A-M-dash", hotkeys[0].Sequence)
		}
	})

	t.Run("skips invalid bindings", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, "chordkeys.toml", `
[[bindings]]
sequence = "C-definitely-not-a-key"
action = ["noop"]

[[bindings]]
sequence = "f1"
action = []

[[bindings]]
sequence = "S-f1"
action = ["ok"]
`)

		hotkeys, err := loadConfig(path)
		if err != nil {
			t.Fatalf("loadConfig: %v", err)
		}
		if len(hotkeys) != 1 {
			t.Fatalf("expected 1 hotkey, got %d", len(hotkeys))
		}
		if hotkeys[0].ID != 3 {
			t.Fatalf("expected ID=3, got %d", hotkeys[0].ID)
		}
		if hotkeys[0].Chords[0] != (chordkeys.Binding{Shift: true, Key: "f1"}) {
			t.Fatalf("unexpected chord: %#v", hotkeys[0].Chords[0])
		}
	})

	t.Run("returns error on missing file", func(t *testing.T) {
		t.Parallel()

		for _, name := range []string{"missing.toml", "missing.yaml"} {
			if _, err := loadConfig(filepath.Join(t.TempDir(), name)); err == nil {
				t.Fatalf("expected error for %s", name)
			}
		}
	})

	t.Run("wraps decode errors", func(t *testing.T) {
		t.Parallel()

		path := writeTemp(t, "chordkeys.toml", `
[[bindings]]
sequence =
`)

		_, err := loadConfig(path)
		if err == nil {
			t.Fatalf("expected error")
		}
		if !strings.Contains(err.Error(), "decode toml:") {
			t.Fatalf("expected wrapped decode error prefix, got %q", err.Error())
		}

		path = writeTemp(t, "chordkeys.yml", "bindings: [\n")
		_, err = loadConfig(path)
		if err == nil || !strings.Contains(err.Error(), "decode yaml:") {
			t.Fatalf("expected wrapped yaml decode error, got %v", err)
		}
	})
}

func TestCompileBindingsErrors(t *testing.T) {
	t.Parallel()

	_, errs := compileBindings(&ConfigFile{Bindings: []BindingConfig{
		{Sequence: "A--", Action: []string{"x"}},
		{Sequence: "   ", Action: []string{"x"}},
		{Sequence: "a", Action: nil},
	}})
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(errs), errs)
	}
	if !errors.Is(errs[0], chordkeys.ErrInvalidBinding) || !errors.Is(errs[1], chordkeys.ErrInvalidBinding) {
		t.Fatalf("expected ErrInvalidBinding, got %v", errs)
	}
	if !strings.HasPrefix(errs[2].Error(), "binding 3 (a): empty action") {
		t.Fatalf("unexpected error: %v", errs[2])
	}
}

func TestShouldReloadConfig(t *testing.T) {
	t.Parallel()

	watched := []string{filepath.Join("home", "u", ".config", "chordkeys.toml")}
	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write", fsnotify.Event{Name: watched[0], Op: fsnotify.Write}, true},
		{"create via rename", fsnotify.Event{Name: filepath.Join("tmp", "chordkeys.toml"), Op: fsnotify.Rename}, true},
		{"chmod only", fsnotify.Event{Name: watched[0], Op: fsnotify.Chmod}, false},
		{"other file", fsnotify.Event{Name: filepath.Join("home", "u", ".config", "other.toml"), Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		if got := shouldReloadConfig(watched, tt.event); got != tt.want {
			t.Errorf("%s: shouldReloadConfig = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestResolveConfigPath(t *testing.T) {
	t.Parallel()

	got, err := resolveConfigPath("/etc/chordkeys.toml", false, envConfig{ConfigPath: "/srv/keys.toml"})
	if err != nil {
		t.Fatalf("resolveConfigPath: %v", err)
	}
	if got != "/srv/keys.toml" {
		t.Fatalf("expected environment path, got %q", got)
	}

	got, err = resolveConfigPath("/etc/chordkeys.toml", true, envConfig{ConfigPath: "/srv/keys.toml"})
	if err != nil {
		t.Fatalf("resolveConfigPath: %v", err)
	}
	if got != "/etc/chordkeys.toml" {
		t.Fatalf("expected flag path, got %q", got)
	}

	got, err = resolveConfigPath(defaultConfigPath, false, envConfig{})
	if err != nil {
		t.Fatalf("resolveConfigPath: %v", err)
	}
	if strings.HasPrefix(got, "~") || !strings.HasSuffix(got, filepath.Join(".config", "chordkeys.toml")) {
		t.Fatalf("expected expanded default path, got %q", got)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("CHORDKEYS_CONFIG", "/tmp/keys.yaml")
	t.Setenv("CHORDKEYS_LOG", "/tmp/chordkeys.log")

	cfg, err := loadEnv()
	if err != nil {
		t.Fatalf("loadEnv: %v", err)
	}
	if cfg.ConfigPath != "/tmp/keys.yaml" || cfg.LogPath != "/tmp/chordkeys.log" {
		t.Fatalf("unexpected env config: %#v", cfg)
	}
}
