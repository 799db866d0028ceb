// Package logger provides leveled console logging on top of the standard log package.
// Lines look like "15:04:05 [INFO] [Component] message", coloured per level when the
// output is a capable terminal.
package logger

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
)

// Level is a log severity. Messages below the logger's level are dropped.
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarning
	LevelError
	LevelFatal
)

var levelTags = [...]string{
	LevelTrace:   "[TRACE]",
	LevelDebug:   "[DEBUG]",
	LevelInfo:    "[INFO]",
	LevelWarning: "[WARNING]",
	LevelError:   "[ERROR]",
	LevelFatal:   "[FATAL]",
}

// ANSI colours: cyan, magenta, green, yellow, red, red.
var levelColors = [...]string{
	LevelTrace:   "\x1b[36m",
	LevelDebug:   "\x1b[35m",
	LevelInfo:    "\x1b[32m",
	LevelWarning: "\x1b[33m",
	LevelError:   "\x1b[31m",
	LevelFatal:   "\x1b[31m",
}

const colorReset = "\x1b[0m"

func (l Level) String() string {
	if l < LevelTrace || l > LevelFatal {
		return fmt.Sprintf("Level(%d)", int(l))
	}
	return strings.Trim(levelTags[l], "[]")
}

// ParseLevel converts a level name (case-insensitive, "warn" accepted) to a Level.
//
// Parameters:
//   - s: the level name
//
// Returns:
//   - Level: the parsed level
//   - error: an error if the name is unknown
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return LevelTrace, nil
	case "DEBUG":
		return LevelDebug, nil
	case "INFO":
		return LevelInfo, nil
	case "WARNING", "WARN":
		return LevelWarning, nil
	case "ERROR":
		return LevelError, nil
	case "FATAL":
		return LevelFatal, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// clamp limits out-of-range levels the same way for every setter.
func (l Level) clamp() Level {
	return max(LevelTrace, min(l, LevelFatal))
}

type loggerImpl struct {
	mu        *sync.Mutex
	out       *log.Logger
	level     Level
	color     bool
	component string
	exit      func(code int)
}

// Logger writes leveled messages.
type Logger interface {
	Tracef(format string, args ...any)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warningf(format string, args ...any)
	Errorf(format string, args ...any)

	// Fatalf logs at FATAL and exits the process with status 1.
	Fatalf(format string, args ...any)

	// Level returns the minimum level that is written.
	Level() Level

	// SetLevel changes the minimum level. Values past FATAL are clamped.
	SetLevel(level Level)

	// Enabled reports whether a message at level would be written.
	Enabled(level Level) bool

	// WithComponent returns a logger sharing this one's output and settings that tags
	// every line with "[component]".
	WithComponent(component string) Logger
}

var _ Logger = &loggerImpl{}

// NewLogger creates a Logger writing to stdout at INFO, coloured when stdout supports it.
//
// Parameters:
//   - options: functional options to configure the logger
//
// Returns:
//   - Logger: the new logger
func NewLogger(options ...LoggerBuilderOption) Logger {
	l := &loggerImpl{
		mu:    &sync.Mutex{},
		out:   log.New(os.Stdout, "", log.Ltime),
		level: LevelInfo,
		color: ColorSupported(os.Stdout),
		exit:  os.Exit,
	}
	for _, option := range options {
		option(l)
	}
	return l
}

var (
	defaultMu     sync.Mutex
	defaultLogger Logger
)

// Default returns the process-wide logger, creating it on first use.
func Default() Logger {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		defaultLogger = NewLogger()
	}
	return defaultLogger
}

// SetDefault replaces the process-wide logger.
func SetDefault(l Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// ColorSupported reports whether f is a terminal whose TERM understands ANSI escapes.
//
// Parameters:
//   - f: the output file, usually os.Stdout
//
// Returns:
//   - bool: true if coloured output should be used
func ColorSupported(f *os.File) bool {
	if f == nil {
		return false
	}
	info, err := f.Stat()
	if err != nil || info.Mode()&os.ModeCharDevice == 0 {
		return false
	}
	term := os.Getenv("TERM")
	return term != "" && term != "dumb"
}

func (l *loggerImpl) Tracef(format string, args ...any)   { l.output(LevelTrace, format, args...) }
func (l *loggerImpl) Debugf(format string, args ...any)   { l.output(LevelDebug, format, args...) }
func (l *loggerImpl) Infof(format string, args ...any)    { l.output(LevelInfo, format, args...) }
func (l *loggerImpl) Warningf(format string, args ...any) { l.output(LevelWarning, format, args...) }
func (l *loggerImpl) Errorf(format string, args ...any)   { l.output(LevelError, format, args...) }

func (l *loggerImpl) Fatalf(format string, args ...any) {
	l.output(LevelFatal, format, args...)
	l.exit(1)
}

func (l *loggerImpl) Level() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

func (l *loggerImpl) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level.clamp()
}

func (l *loggerImpl) Enabled(level Level) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return level >= l.level
}

func (l *loggerImpl) WithComponent(component string) Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	return &loggerImpl{
		mu:        l.mu,
		out:       l.out,
		level:     l.level,
		color:     l.color,
		component: component,
		exit:      l.exit,
	}
}

func (l *loggerImpl) output(level Level, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	// FATAL is always written.
	if level < l.level && level != LevelFatal {
		return
	}
	level = level.clamp()

	var b strings.Builder
	if l.color {
		b.WriteString(levelColors[level])
	}
	b.WriteString(levelTags[level])
	b.WriteByte(' ')
	if l.component != "" {
		b.WriteString("[" + l.component + "] ")
	}
	b.WriteString(strings.TrimRight(fmt.Sprintf(format, args...), "\n"))
	if l.color {
		b.WriteString(colorReset)
	}
	l.out.Println(b.String())
}
