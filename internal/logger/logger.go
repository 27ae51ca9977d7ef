// Package logger provides the leveled logger used by the huffpack command.
package logger

import (
	"fmt"
	"io"
	"log"
	"strings"
)

// Level selects which messages a Logger emits.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelError
)

// ParseLevel converts "debug", "info" or "error" (case-insensitive) into a
// Level.
func ParseLevel(str string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "error":
		return LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", str)
}

// String returns the lower-case name of the level.
func (lvl Level) String() string {
	switch lvl {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelError:
		return "error"
	}
	return fmt.Sprintf("Level(%d)", int(lvl))
}

type Logger interface {
	Debugf(format string, v ...interface{})
	Infof(format string, v ...interface{})
	Errorf(format string, v ...interface{})

	// Enabled reports whether messages at lvl are emitted.
	Enabled(lvl Level) bool

	// Writer returns a writer whose output is logged at lvl, one message
	// per line, or io.Discard if lvl is disabled.
	Writer(lvl Level) io.Writer
}

type stdLogger struct {
	l     *log.Logger
	level Level
}

// New returns a Logger that writes to w, dropping messages below level.
func New(w io.Writer, level Level) Logger {
	return &stdLogger{l: log.New(w, "huffpack: ", 0), level: level}
}

func (s *stdLogger) Debugf(format string, v ...interface{}) { s.logf(LevelDebug, format, v...) }
func (s *stdLogger) Infof(format string, v ...interface{})  { s.logf(LevelInfo, format, v...) }
func (s *stdLogger) Errorf(format string, v ...interface{}) { s.logf(LevelError, format, v...) }

func (s *stdLogger) Enabled(lvl Level) bool {
	return lvl >= s.level
}

func (s *stdLogger) Writer(lvl Level) io.Writer {
	if !s.Enabled(lvl) {
		return io.Discard
	}
	return lineWriter{s, lvl}
}

func (s *stdLogger) logf(lvl Level, format string, v ...interface{}) {
	if !s.Enabled(lvl) {
		return
	}
	s.l.Printf("["+strings.ToUpper(lvl.String())+"] "+format, v...)
}

type lineWriter struct {
	s   *stdLogger
	lvl Level
}

func (lw lineWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		lw.s.logf(lw.lvl, "%s", line)
	}
	return len(p), nil
}
