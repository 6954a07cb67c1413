package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LogFilePath is the path to the log file, relative to the working directory
// (project root when run via go run ./cmd/gravity).
const LogFilePath = "logs/gravity.txt"

// Logger appends timestamped, leveled lines to a file on disk and keeps them
// in memory. Debug lines (e.g. singularity clamps in the physics step) are
// dropped unless debug logging is enabled.
type Logger struct {
	mu    sync.Mutex
	lines []string
	debug bool
	file  bool
}

// New returns a new Logger and ensures the logs directory exists. When the
// directory cannot be created (read-only FS, browser), lines are kept in
// memory only.
func New() *Logger {
	err := os.MkdirAll(filepath.Dir(LogFilePath), 0755)
	return &Logger{lines: make([]string, 0), file: err == nil}
}

// SetDebug enables or disables debug-level output.
func (l *Logger) SetDebug(on bool) {
	l.mu.Lock()
	l.debug = on
	l.mu.Unlock()
}

// log appends a formatted line with a level tag and timestamp, and mirrors it
// to the log file when available.
func (l *Logger) log(level, format string, args ...any) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	stamped := "[" + ts + "] " + level + " " + fmt.Sprintf(format, args...)

	l.mu.Lock()
	l.lines = append(l.lines, stamped)
	file := l.file
	l.mu.Unlock()

	if !file {
		return
	}
	f, err := os.OpenFile(LogFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	_, _ = f.WriteString(stamped + "\n")
	_ = f.Close()
}

// Debugf logs at debug level; a no-op unless SetDebug(true) was called.
func (l *Logger) Debugf(format string, args ...any) {
	l.mu.Lock()
	on := l.debug
	l.mu.Unlock()
	if on {
		l.log("DEBUG", format, args...)
	}
}

// Infof logs at info level.
func (l *Logger) Infof(format string, args ...any) {
	l.log("INFO", format, args...)
}

// Errorf logs at error level.
func (l *Logger) Errorf(format string, args ...any) {
	l.log("ERROR", format, args...)
}

// Lines returns a copy of all stored lines.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}
