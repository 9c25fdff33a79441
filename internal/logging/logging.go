// Package logging is the application logger. Every line has the form
// "[LEVEL] message" and goes to a console writer, an optional append-mode
// log file and any subscribed observers.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Level is a log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a level name (any case) to a Level. "warn" is accepted
// as an alias for WARNING.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug, nil
	case "INFO", "":
		return LevelInfo, nil
	case "WARNING", "WARN":
		return LevelWarning, nil
	case "ERROR":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("logging: unknown level %q", s)
}

// Entry is one emitted log line, delivered to observers.
type Entry struct {
	Time    time.Time
	Level   Level
	Message string
}

// String formats the entry as "[LEVEL] message".
func (e Entry) String() string {
	return "[" + e.Level.String() + "] " + e.Message
}

// Logger writes leveled messages. It is safe for concurrent use.
type Logger struct {
	mu sync.Mutex

	level   Level
	console *log.Logger
	styles  map[Level]lipgloss.Style

	file    *os.File
	fileLog *log.Logger

	observers []func(Entry)
}

// New returns a logger writing to out at the given minimum level. Level
// tags are coloured when out is a terminal. A nil out discards console
// output.
func New(out io.Writer, level Level) *Logger {
	if out == nil {
		out = io.Discard
	}
	r := lipgloss.NewRenderer(out)
	return &Logger{
		level:   level,
		console: log.New(out, "", 0),
		styles: map[Level]lipgloss.Style{
			LevelDebug:   r.NewStyle().Foreground(lipgloss.Color("#6B7280")),
			LevelInfo:    r.NewStyle().Foreground(lipgloss.Color("#10B981")),
			LevelWarning: r.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true),
			LevelError:   r.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true),
		},
	}
}

// Discard returns a logger that only notifies observers.
func Discard() *Logger {
	return New(io.Discard, LevelDebug)
}

// Open starts appending to the log file at path, replacing any file
// already open. On failure the logger keeps working without a file.
func (l *Logger) Open(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("logging: open %s: %w", path, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		l.file.Close()
	}
	l.file = f
	l.fileLog = log.New(f, "", 0)
	return nil
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	l.fileLog = nil
	return err
}

// SetLevel changes the minimum level.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

// Level returns the minimum level.
func (l *Logger) Level() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// Subscribe registers fn to receive every entry at or above the minimum
// level. fn runs on the logging goroutine while the logger is locked and
// must not log.
func (l *Logger) Subscribe(fn func(Entry)) {
	l.mu.Lock()
	l.observers = append(l.observers, fn)
	l.mu.Unlock()
}

// Log emits a message at level.
func (l *Logger) Log(level Level, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.level {
		return
	}

	e := Entry{Time: time.Now(), Level: level, Message: fmt.Sprintf(format, args...)}
	tag := "[" + level.String() + "]"
	l.console.Print(l.styles[level].Render(tag) + " " + e.Message)
	if l.fileLog != nil {
		l.fileLog.Print(e.String())
	}
	for _, fn := range l.observers {
		fn(e)
	}
}

func (l *Logger) Debugf(format string, args ...any) { l.Log(LevelDebug, format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.Log(LevelInfo, format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.Log(LevelWarning, format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.Log(LevelError, format, args...) }
