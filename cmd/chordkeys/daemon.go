package main

import (
	"fmt"
	"sync"

	"github.com/tischda/chordkeys"
)

// daemon keeps the matcher's registrations in sync with the binding file and
// launches the action of every completed sequence.
type daemon struct {
	mu      sync.Mutex
	matcher *chordkeys.Matcher
	path    string
	handles []chordkeys.Handle

	launch func(cmd []string) (int, error) // starts an action, executeCommand by default
	status func(msg string)                // shows combo progress
}

// newDaemon creates a daemon registering bindings on m.
func newDaemon(m *chordkeys.Matcher, path string) *daemon {
	return &daemon{
		matcher: m,
		path:    path,
		launch:  executeCommand,
		status:  func(string) {},
	}
}

// reload unregisters all hotkeys, loads the binding file and registers its bindings.
//
// Returns:
//   - error: Non-nil if the file cannot be loaded; the previous bindings are kept.
func (d *daemon) reload() error {
	// 1. Load the bindings before dropping the current ones
	hotkeys, err := loadConfig(d.path)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	// 2. Start from a clean state
	d.unregisterAll()

	// 3. Register all hotkeys
	for _, hk := range hotkeys {
		if err := d.register(hk); err != nil {
			logger.Printf("Failed to register hotkey %d (%s): %v", hk.ID, hk.Sequence, err)
			continue
		}
		logger.Printf("Registered %d: %s -> %v", hk.ID, hk.Sequence, hk.Action)
	}

	logger.Printf("Loaded and registered %d bindings from %s", len(d.handles), d.path)
	return nil
}

// register must be called with d.mu held.
func (d *daemon) register(hk Hotkey) error {
	progress := chordkeys.OnComboChange(func(combo int) {
		if combo > 0 {
			d.status(fmt.Sprintf("%s (%d/%d)", hk.Sequence, combo, len(hk.Chords)))
		}
	})

	bind := d.matcher.On
	if hk.Once {
		bind = d.matcher.Once
	}
	h, err := bind(hk.Sequence, func() { d.execute(hk) }, progress)
	if err != nil {
		return err
	}
	d.handles = append(d.handles, h)
	return nil
}

// unregisterAll must be called with d.mu held.
func (d *daemon) unregisterAll() {
	if d.handles == nil {
		return
	}
	for _, h := range d.handles {
		d.matcher.Off(h)
	}
	d.handles = nil
	logger.Println("Unregistered all hotkeys.")
}

// close unregisters all hotkeys.
func (d *daemon) close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.unregisterAll()
}

// execute launches the action of hk.
func (d *daemon) execute(hk Hotkey) {
	d.status(hk.Sequence)
	logger.Printf("Executing %s: %v", hk.Sequence, hk.Action)
	pid, err := d.launch(hk.Action)
	if err != nil {
		logger.Println("ERROR:", err)
		return
	}
	logger.Printf("Started %v with PID %d", hk.Action[0], pid)
}
