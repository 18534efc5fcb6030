//go:build unix

package main

import (
	"errors"
	"fmt"
	"os/exec"
	"syscall"
)

// executeCommand starts the action of a binding in its own session, detached
// from the terminal the daemon runs in.
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
	c.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := c.Start(); err != nil {
		return 0, fmt.Errorf("failed to start command %v : %w", cmd, err)
	}
	// Reap the child when it exits.
	go c.Wait() //nolint:errcheck
	return c.Process.Pid, nil
}
