// Package logging provides leveled, optionally colored logging for bageri
// built on log/slog. The logger is constructed once in the CLI layer and
// passed explicitly to every component; there is no package-level state.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"
)

// LevelTrace sits below slog.LevelDebug and is enabled at -vvv.
const LevelTrace = slog.LevelDebug - 4

// Options holds logger configuration.
type Options struct {
	Level   slog.Level
	NoColor bool
	Output  io.Writer
}

// DefaultOptions returns the configuration used when no flags are set:
// warnings and errors only, colors enabled, output to stderr.
func DefaultOptions() *Options {
	return &Options{
		Level:   slog.LevelWarn,
		NoColor: false,
		Output:  os.Stderr,
	}
}

// VerbosityLevel maps a counted -v flag to a log level.
// 0 -> Warn, 1 -> Info, 2 -> Debug, 3+ -> Trace.
func VerbosityLevel(verbosity int) slog.Level {
	switch verbosity {
	case 0:
		return slog.LevelWarn
	case 1:
		return slog.LevelInfo
	case 2:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}

// Logger is a thin wrapper around slog with a component name attached to
// every record. Child loggers share the underlying handler.
type Logger struct {
	handler   slog.Handler
	level     slog.Level
	component string
}

// New creates a logger from the given options.
func New(opts *Options) *Logger {
	if opts == nil {
		opts = DefaultOptions()
	}
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	return &Logger{
		handler: &consoleHandler{
			out:     out,
			level:   opts.Level,
			noColor: opts.NoColor,
		},
		level: opts.Level,
	}
}

// WithComponent returns a logger that tags every record with the component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{handler: l.handler, level: l.level, component: component}
}

// Trace logs at trace level, visible only at -vvv.
func (l *Logger) Trace(msg string, args ...any) { l.log(LevelTrace, msg, args...) }

// Debug logs at debug level.
func (l *Logger) Debug(msg string, args ...any) { l.log(slog.LevelDebug, msg, args...) }

// Info logs at info level.
func (l *Logger) Info(msg string, args ...any) { l.log(slog.LevelInfo, msg, args...) }

// Warn logs at warn level.
func (l *Logger) Warn(msg string, args ...any) { l.log(slog.LevelWarn, msg, args...) }

// Error logs at error level, attaching err when non-nil.
func (l *Logger) Error(err error, msg string, args ...any) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	l.log(slog.LevelError, msg, args...)
}

func (l *Logger) log(level slog.Level, msg string, args ...any) {
	if level < l.level {
		return
	}
	record := slog.NewRecord(time.Now(), level, msg, 0)
	if l.component != "" {
		record.AddAttrs(slog.String("component", l.component))
	}
	record.Add(args...)
	_ = l.handler.Handle(context.Background(), record)
}

// consoleHandler renders records as single human-readable lines:
//
//	12:04:05 INFO  watcher: watching path path=src
//
// Level names are colored unless NoColor is set.
type consoleHandler struct {
	mu      sync.Mutex
	out     io.Writer
	level   slog.Level
	noColor bool
	attrs   []slog.Attr
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	fmt.Fprintf(h.out, "%s %s ", r.Time.Format("15:04:05"), h.levelName(r.Level))
	var component string
	attrs := make([]slog.Attr, 0, r.NumAttrs()+len(h.attrs))
	attrs = append(attrs, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)
		return true
	})
	rest := attrs[:0]
	for _, a := range attrs {
		if a.Key == "component" {
			component = a.Value.String()
			continue
		}
		rest = append(rest, a)
	}
	if component != "" {
		fmt.Fprintf(h.out, "%s: ", component)
	}
	fmt.Fprint(h.out, r.Message)
	for _, a := range rest {
		fmt.Fprintf(h.out, " %s=%v", a.Key, a.Value)
	}
	fmt.Fprintln(h.out)
	return nil
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := &consoleHandler{out: h.out, level: h.level, noColor: h.noColor}
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return clone
}

func (h *consoleHandler) WithGroup(string) slog.Handler { return h }

func (h *consoleHandler) levelName(level slog.Level) string {
	var name, color string
	switch {
	case level < slog.LevelDebug:
		name, color = "TRACE", "\033[90m"
	case level < slog.LevelInfo:
		name, color = "DEBUG", "\033[36m"
	case level < slog.LevelWarn:
		name, color = "INFO ", "\033[32m"
	case level < slog.LevelError:
		name, color = "WARN ", "\033[33m"
	default:
		name, color = "ERROR", "\033[31m"
	}
	if h.noColor {
		return name
	}
	return color + name + "\033[0m"
}
