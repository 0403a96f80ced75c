package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogLevel is a thin enum for user friendly level configuration decoupled from slog.
type LogLevel int

const (
	// LogLevelDebug is the debug logging level.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo is the informational logging level.
	LogLevelInfo
	// LogLevelWarn is the warning logging level.
	LogLevelWarn
	// LogLevelError is the error logging level.
	LogLevelError
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a case-insensitive level name to a LogLevel.
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LogLevelDebug, nil
	case "", "info":
		return LogLevelInfo, nil
	case "warn", "warning":
		return LogLevelWarn, nil
	case "error":
		return LogLevelError, nil
	default:
		return LogLevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// Logger defines the minimal logging interface for tabmesh. Args are
// slog-style key/value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// SlogAdapter lets a host's own *slog.Logger, with whatever handler and
// attributes it already carries, serve a tabmesh component. Level
// filtering is left to the handler.
type SlogAdapter struct {
	l *slog.Logger
}

// NewSlogAdapter wraps l. A nil l uses slog.Default().
func NewSlogAdapter(l *slog.Logger) *SlogAdapter {
	if l == nil {
		l = slog.Default()
	}
	return &SlogAdapter{l: l}
}

// ForTab returns an adapter that tags every entry with the tab id.
func (a *SlogAdapter) ForTab(id string) *SlogAdapter {
	return &SlogAdapter{l: a.l.With(slog.String("tab_id", id))}
}

// Debug logs at debug level.
func (a *SlogAdapter) Debug(msg string, args ...any) { a.l.Debug(msg, args...) }

// Info logs at info level.
func (a *SlogAdapter) Info(msg string, args ...any) { a.l.Info(msg, args...) }

// Warn logs at warn level.
func (a *SlogAdapter) Warn(msg string, args ...any) { a.l.Warn(msg, args...) }

// Error logs at error level.
func (a *SlogAdapter) Error(msg string, args ...any) { a.l.Error(msg, args...) }

// TabLogger wraps slog.Logger adding component and tab scoping plus
// protocol helpers. With* methods return copies.
type TabLogger struct {
	logger    *slog.Logger
	level     LogLevel
	component string
	tabID     string
}

// LoggerConfig configures construction of a TabLogger.
type LoggerConfig struct {
	Level     LogLevel
	Format    string // json or text
	Output    io.Writer
	AddSource bool
	Component string
}

// DefaultLoggerConfig returns a baseline JSON info level configuration.
func DefaultLoggerConfig() *LoggerConfig {
	return &LoggerConfig{Level: LogLevelInfo, Format: "json", Output: os.Stdout}
}

// NewLogger builds a TabLogger from a config (or defaults if nil).
func NewLogger(cfg *LoggerConfig) *TabLogger {
	if cfg == nil {
		cfg = DefaultLoggerConfig()
	}
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: slogLevel(cfg.Level), AddSource: cfg.AddSource}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}
	return &TabLogger{logger: slog.New(handler), level: cfg.Level, component: cfg.Component}
}

func slogLevel(l LogLevel) slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithComponent sets the logical component (registry, router, child, watch).
func (l *TabLogger) WithComponent(c string) *TabLogger {
	nl := *l
	nl.component = c
	return &nl
}

// WithTab attaches a tab id to every entry.
func (l *TabLogger) WithTab(id string) *TabLogger {
	nl := *l
	nl.tabID = id
	return &nl
}

func (l *TabLogger) buildAttrs(args []any) []slog.Attr {
	attrs := make([]slog.Attr, 0, 2+len(args)/2)
	if l.component != "" {
		attrs = append(attrs, slog.String("component", l.component))
	}
	if l.tabID != "" {
		attrs = append(attrs, slog.String("tab_id", l.tabID))
	}
	r := slog.Record{}
	r.Add(args...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)
		return true
	})
	return attrs
}

func (l *TabLogger) log(level slog.Level, allowed bool, msg string, args ...any) {
	if !allowed {
		return
	}
	l.logger.LogAttrs(context.Background(), level, msg, l.buildAttrs(args)...)
}

// Debug logs at debug level.
func (l *TabLogger) Debug(msg string, args ...any) {
	l.log(slog.LevelDebug, l.level <= LogLevelDebug, msg, args...)
}

// Info logs at info level.
func (l *TabLogger) Info(msg string, args ...any) {
	l.log(slog.LevelInfo, l.level <= LogLevelInfo, msg, args...)
}

// Warn logs at warn level.
func (l *TabLogger) Warn(msg string, args ...any) {
	l.log(slog.LevelWarn, l.level <= LogLevelWarn, msg, args...)
}

// Error logs at error level.
func (l *TabLogger) Error(msg string, args ...any) {
	l.log(slog.LevelError, l.level <= LogLevelError, msg, args...)
}

// LogInbound records the routing decision for one inbound message on any
// Logger. Failures are logged at error level, everything else at debug.
func LogInbound(l Logger, tag, origin string, accepted bool, err error) {
	if err != nil {
		l.Error("Inbound message failed", "tag", tag, "origin", origin, "error", err.Error())
		return
	}
	l.Debug("Inbound message routed", "tag", tag, "origin", origin, "accepted", accepted)
}

// LogOutbound records a message handed to the transport for a tab.
func LogOutbound(l Logger, tabID string, targets int, err error) {
	if err != nil {
		l.Warn("Outbound delivery failed", "tab_id", tabID, "targets", targets, "error", err.Error())
		return
	}
	l.Debug("Outbound message sent", "tab_id", tabID, "targets", targets)
}

// NoOpLogger discards all log messages. Useful for testing or when logging is disabled.
type NoOpLogger struct{}

// Debug logs a debug message.
func (NoOpLogger) Debug(string, ...any) {}

// Info logs an informational message.
func (NoOpLogger) Info(string, ...any) {}

// Warn logs a warning message.
func (NoOpLogger) Warn(string, ...any) {}

// Error logs an error message.
func (NoOpLogger) Error(string, ...any) {}
