package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

var logger = log.New(os.Stdout, "", 0)

// setupLogging points logger at logPath, or at stdout if logPath is empty.
//
// Parameters:
//   - logPath: Log file path; its directory is created if needed.
//
// Returns:
//   - *os.File: The opened log file the caller must close, nil for stdout.
//   - error: Non-nil if the directory or the file cannot be created.
func setupLogging(logPath string) (*os.File, error) {
	if logPath == "" {
		logger.SetOutput(os.Stdout)
		logger.SetPrefix("")
		logger.SetFlags(0)
		return nil, nil
	}

	// Ensure directory exists for file logging
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", filepath.Dir(logPath), err)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	logger.SetOutput(f)
	logger.SetPrefix("[chordkeys] ")
	logger.SetFlags(log.LstdFlags | log.Lshortfile)
	logger.Println("=== LOG INITIALIZED ===")
	return f, nil
}
