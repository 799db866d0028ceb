package logger

import (
	"io"
	"log"
)

// LoggerBuilderOption is a functional option applied to a logger during construction via NewLogger.
type LoggerBuilderOption func(*loggerImpl)

// WithOutput redirects output to w. Colour is turned off; use WithColor afterwards to force it.
//
// Parameters:
//   - w: the destination writer
//
// Returns:
//   - LoggerBuilderOption: a function that sets the output
func WithOutput(w io.Writer) LoggerBuilderOption {
	return func(l *loggerImpl) {
		l.out = log.New(w, "", l.out.Flags())
		l.color = false
	}
}

// WithLevel sets the minimum level that is written.
//
// Parameters:
//   - level: the minimum level
//
// Returns:
//   - LoggerBuilderOption: a function that sets the level
func WithLevel(level Level) LoggerBuilderOption {
	return func(l *loggerImpl) {
		l.level = level.clamp()
	}
}

// WithColor forces ANSI colouring on or off.
//
// Parameters:
//   - enabled: true to colour each line by level
//
// Returns:
//   - LoggerBuilderOption: a function that sets colouring
func WithColor(enabled bool) LoggerBuilderOption {
	return func(l *loggerImpl) {
		l.color = enabled
	}
}

// WithFlags sets the standard log flags (log.Ltime by default).
//
// Parameters:
//   - flags: log package flags
//
// Returns:
//   - LoggerBuilderOption: a function that sets the flags
func WithFlags(flags int) LoggerBuilderOption {
	return func(l *loggerImpl) {
		l.out.SetFlags(flags)
	}
}

// WithComponent tags every line with "[component]".
//
// Parameters:
//   - component: the component name
//
// Returns:
//   - LoggerBuilderOption: a function that sets the component
func WithComponent(component string) LoggerBuilderOption {
	return func(l *loggerImpl) {
		l.component = component
	}
}

// withExit replaces os.Exit for FATAL messages.
func withExit(exit func(code int)) LoggerBuilderOption {
	return func(l *loggerImpl) {
		l.exit = exit
	}
}
