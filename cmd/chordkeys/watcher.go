package main

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce drops reload signals that follow the previous one too closely.
const reloadDebounce = 200 * time.Millisecond

// resolveWatchPaths returns the cleaned absolute config path and, if it is a
// symlink, the cleaned path of its target.
//
// Parameters:
//   - configPath: Path to the config file.
//
// Returns:
//   - string: The config path itself.
//   - string: The symlink target, or "" if configPath is not a symlink.
func resolveWatchPaths(configPath string) (string, string) {
	link := filepath.Clean(configPath)
	if abs, err := filepath.Abs(link); err == nil {
		link = abs
	}
	target, err := filepath.EvalSymlinks(link)
	if err != nil || target == link {
		return link, ""
	}
	return link, filepath.Clean(target)
}

// startConfigWatcher watches configPath for changes and calls notify on each
// relevant change.
//
// Parameters:
//   - configPath: Full path to the config file.
//   - notify: Called from the watcher goroutine when the config should be reloaded.
//
// Returns:
//   - *fsnotify.Watcher: A watcher the caller should close when done.
//   - error: Non-nil if the watcher cannot be created or a directory cannot be watched.
func startConfigWatcher(configPath string, notify func()) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watching a directory is more reliable than watching a single file.
	link, target := resolveWatchPaths(configPath)
	watched := []string{link}
	if target != "" {
		watched = append(watched, target)
	}
	for _, p := range watched {
		if err := watcher.Add(filepath.Dir(p)); err != nil {
			watcher.Close() //nolint:errcheck
			return nil, err
		}
	}

	go func() {
		var last time.Time
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !shouldReloadConfig(watched, event) {
					continue
				}
				// Debounce noisy editor save patterns.
				if time.Since(last) < reloadDebounce {
					continue
				}
				last = time.Now()
				logger.Println("Config reload signalled")
				notify()

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Printf("Config watcher error: %v", err)
			}
		}
	}()
	return watcher, nil
}
