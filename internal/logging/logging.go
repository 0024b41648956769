// Package logging points the standard logger at a rotated file for debug
// runs and silences it otherwise.
package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

const (
	// Dir is where debug logs are written, relative to the working directory.
	Dir = "logs"
	// FileName is the active log file.
	FileName = "night-chase.log"
	// MaxSize is the size past which the active file is rotated on startup.
	MaxSize = 10 * 1024 * 1024
)

// Setup configures the standard logger. With debug off, output is discarded
// and nil is returned. With debug on, output is appended to Dir/FileName,
// rotating an oversized file to a timestamped name first. The caller closes
// the returned file. Log output never goes to stdout or stderr, which the
// terminal build owns.
func Setup(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}
	if err := os.MkdirAll(Dir, 0o755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	path := filepath.Join(Dir, FileName)
	if info, err := os.Stat(path); err == nil && info.Size() > MaxSize {
		rotated := filepath.Join(Dir, "night-chase-"+time.Now().Format("20060102-150405")+".log")
		if err := os.Rename(path, rotated); err != nil {
			log.SetOutput(io.Discard)
			return nil
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.Printf("=== night chase started (pid %d) ===", os.Getpid())
	return f
}
