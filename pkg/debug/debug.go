// Package debug provides conditional debug logging for folio.
//
// Debug logging is enabled by setting the FOLIO_DEBUG environment variable:
//
//	FOLIO_DEBUG=1 folio
//
// While the TUI owns the terminal, stderr is hidden behind the alternate
// screen; set FOLIO_DEBUG_FILE to send the log to a file instead.
//
// When disabled (default), all debug functions are no-ops.
package debug

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

const prefix = "[FOLIO_DEBUG] "

var (
	// enabled is true when FOLIO_DEBUG env var is set
	enabled bool
	// logger writes with the [FOLIO_DEBUG] prefix
	logger *log.Logger
)

func init() {
	if os.Getenv("FOLIO_DEBUG") != "" {
		enabled = true
		logger = log.New(os.Stderr, prefix, log.Ltime|log.Lmicroseconds)
	}
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	return enabled
}

// SetEnabled allows programmatic control of debug logging.
func SetEnabled(e bool) {
	enabled = e
	if e && logger == nil {
		logger = log.New(os.Stderr, prefix, log.Ltime|log.Lmicroseconds)
	}
}

// SetOutput redirects debug output. It does not change Enabled.
func SetOutput(w io.Writer) {
	if logger == nil {
		logger = log.New(w, prefix, log.Ltime|log.Lmicroseconds)
		return
	}
	logger.SetOutput(w)
}

// OpenFile redirects debug output to the file named by FOLIO_DEBUG_FILE, if
// set and debug is enabled. The returned close func is always safe to call.
func OpenFile() (func() error, error) {
	path := os.Getenv("FOLIO_DEBUG_FILE")
	if !enabled || path == "" {
		return func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return func() error { return nil }, fmt.Errorf("opening debug log: %w", err)
	}
	SetOutput(f)
	return f.Close, nil
}

// Log writes a debug message if debug logging is enabled.
// Uses printf-style formatting.
func Log(format string, args ...any) {
	if !enabled {
		return
	}
	logger.Printf(format, args...)
}

// LogTiming writes a timing message if debug logging is enabled.
func LogTiming(name string, d time.Duration) {
	if !enabled {
		return
	}
	logger.Printf("%s took %v", name, d)
}

// LogIf writes a debug message only if the condition is true.
func LogIf(cond bool, format string, args ...any) {
	if !enabled || !cond {
		return
	}
	logger.Printf(format, args...)
}

// Dump logs a value with its type for debugging complex structures.
func Dump(name string, v any) {
	if !enabled {
		return
	}
	logger.Printf("%s: %T = %+v", name, v, v)
}
