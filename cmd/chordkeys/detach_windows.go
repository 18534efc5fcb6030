//go:build windows

package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"golang.org/x/sys/windows"
)

// executeCommand starts the action of a binding as a detached process. The
// process is not attached to the current console and runs independently; it
// inherits the daemon's environment.
//
// Parameters:
//   - cmd: The executable to run and its arguments.
//
// Returns:
//   - int: The process ID of the started process.
//   - error: Non-nil if cmd is empty or the process cannot be started.
func executeCommand(cmd []string) (int, error) {
	if len(cmd) == 0 {
		return 0, errors.New("command array is empty")
	}
	c := exec.Command(cmd[0], cmd[1:]...)
	c.SysProcAttr = &windows.SysProcAttr{
		CreationFlags: windows.DETACHED_PROCESS | windows.CREATE_NEW_PROCESS_GROUP,
	}
	c.Env = os.Environ()

	if err := c.Start(); err != nil {
		return 0, fmt.Errorf("failed to start command %v : %w", cmd, err)
	}
	pid := c.Process.Pid
	// Release the handle, the daemon never waits for its actions.
	if err := c.Process.Release(); err != nil {
		logger.Printf("release %d: %v", pid, err)
	}
	return pid, nil
}
