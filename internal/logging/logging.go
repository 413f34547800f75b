package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const defaultLogFile = "popular-movies.log"

var (
	mu           sync.Mutex
	traceEnabled bool
	logPath      = defaultLogFile
	logLevel     = zerolog.InfoLevel
	logFile      *os.File
	logger       = zerolog.Nop()
	opened       bool
)

// ParseLevel maps a configuration string to a zerolog level. Unknown values
// fall back to info.
func ParseLevel(value string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	}
	return zerolog.InfoLevel
}

// Configure sets the log destination and minimum level. Empty paths fall
// back to the default file. Directories are created automatically when
// missing. The terminal belongs to the UI, so nothing is written to stderr
// except failures to open the log itself.
func Configure(path, level string) {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
	logLevel = ParseLevel(level)
	if strings.TrimSpace(path) == "" {
		logPath = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath = defaultLogFile
		return
	}
	logPath = path
}

// SetOutput sends log entries to w instead of the log file.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
	logger = newLogger(w)
	opened = true
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// TraceEnabled reports whether Trace writes anything.
func TraceEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return traceEnabled
}

// Logger returns the shared logger, opening the log file on first use.
func Logger() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return currentLocked()
}

// Error writes err to the shared log.
func Error(err error) {
	if err == nil {
		return
	}
	l := Logger()
	l.Error().Err(err).Send()
}

// Trace appends a structured entry to the shared log when tracing is
// enabled. Trace entries ignore the configured level.
func Trace(event string, payload interface{}) {
	mu.Lock()
	if !traceEnabled {
		mu.Unlock()
		return
	}
	l := currentLocked()
	mu.Unlock()
	entry := l.Log().Str("event", event)
	if payload != nil {
		entry = entry.Interface("payload", payload)
	}
	entry.Send()
}

// Close flushes and releases the log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
}

func currentLocked() zerolog.Logger {
	if opened {
		return logger.Level(logLevel)
	}
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		return zerolog.Nop()
	}
	logFile = f
	logger = newLogger(f)
	opened = true
	return logger.Level(logLevel)
}

func closeLocked() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	logger = zerolog.Nop()
	opened = false
}

func newLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
}
