// Package logger provides leveled logging for graphidx.
// Messages are printed to stderr as "[LEVEL] message" lines. By default only
// errors are printed; the --verbose flag lowers the threshold to debug so users
// can follow the indexing pipeline stage by stage.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Level is a logging severity threshold.
type Level int

// Logging levels, lowest first.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the level's tag as printed in log lines.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	default:
		return "ERROR"
	}
}

// ParseLevel converts a case-insensitive level name.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelError, fmt.Errorf("unknown log level %q", s)
	}
}

var (
	mu     sync.RWMutex
	level  = LevelError
	output io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
// Verbose mode prints everything from debug up.
func SetVerbose(v bool) {
	if v {
		SetLevel(LevelDebug)
		return
	}
	SetLevel(LevelError)
}

// IsVerbose returns true if debug messages are printed.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return level <= LevelDebug
}

// SetLevel sets the minimum level that is printed.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func logf(l Level, component, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if l < level {
		return
	}
	if component != "" {
		format = component + ": " + format
	}
	fmt.Fprintf(output, "["+l.String()+"] "+format+"\n", args...)
}

// Debug prints a debug message.
func Debug(format string, args ...any) { logf(LevelDebug, "", format, args...) }

// Info prints an informational message.
func Info(format string, args ...any) { logf(LevelInfo, "", format, args...) }

// Warn prints a warning message.
func Warn(format string, args ...any) { logf(LevelWarn, "", format, args...) }

// Error prints an error message. Errors are printed at every level.
func Error(format string, args ...any) { logf(LevelError, "", format, args...) }

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if level <= LevelDebug {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Logger prefixes every message with a component name, e.g. a workflow.
type Logger struct {
	component string
}

// For returns a logger for component.
func For(component string) *Logger {
	return &Logger{component: component}
}

// Debug prints a debug message.
func (l *Logger) Debug(format string, args ...any) { logf(LevelDebug, l.component, format, args...) }

// Info prints an informational message.
func (l *Logger) Info(format string, args ...any) { logf(LevelInfo, l.component, format, args...) }

// Warn prints a warning message.
func (l *Logger) Warn(format string, args ...any) { logf(LevelWarn, l.component, format, args...) }

// Error prints an error message.
func (l *Logger) Error(format string, args ...any) { logf(LevelError, l.component, format, args...) }
