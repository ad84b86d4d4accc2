// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logging routes the standard logger of the benchtable
// command to stderr and, optionally, to a log file.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
)

var (
	mu      sync.Mutex
	logFile *os.File

	verbose atomic.Bool
)

// Init sends log output to stderr and, if logPath is not empty, appends
// it to that file as well. Debug messages are printed only if debug is
// set.
func Init(logPath string, debug bool) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	verbose.Store(debug)

	writers := []io.Writer{os.Stderr}
	if logPath != "" {
		if dir := filepath.Dir(logPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		logFile = f
		writers = append(writers, f)
	}
	log.SetOutput(io.MultiWriter(writers...))
	return nil
}

// Close closes the log file, if any, and restores logging to stderr.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	log.SetOutput(os.Stderr)
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// Debugf logs a message if debug output is enabled.
func Debugf(format string, args ...any) {
	if verbose.Load() {
		log.Output(2, "debug: "+fmt.Sprintf(format, args...))
	}
}

// Warnf logs a problem that does not stop the command.
func Warnf(format string, args ...any) {
	log.Output(2, "warning: "+fmt.Sprintf(format, args...))
}
