package logger

import (
	"context"
	"io"
	"os"

	"github.com/askdesk/askdesk-go/ctxutil"
	"github.com/askdesk/askdesk-go/logging/logger/config"

	"github.com/sirupsen/logrus"
)

// Logger wraps the underlying logrus logger
type Logger struct {
	log *logrus.Logger
}

var std = &Logger{log: logrus.StandardLogger()}

// New configures the standard logger from config and returns a cleanup
// function closing any opened output file
func New(cfg *config.Config) (func(), error) {
	cleanup := func() {}
	if cfg == nil {
		return cleanup, nil
	}

	std.log.SetLevel(toLevel(cfg.Level))

	switch cfg.Format {
	case "json":
		std.log.SetFormatter(&logrus.JSONFormatter{})
	default:
		std.log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	switch cfg.Output {
	case "file":
		if cfg.OutputFile != "" {
			f, err := os.OpenFile(cfg.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return cleanup, err
			}
			std.log.SetOutput(f)
			cleanup = func() { _ = f.Close() }
		}
	case "none":
		std.log.SetOutput(io.Discard)
	default:
		std.log.SetOutput(os.Stderr)
	}

	return cleanup, nil
}

// StdLogger returns the standard logger
func StdLogger() *Logger {
	return std
}

// toLevel maps the numeric config level to a logrus level
func toLevel(level int) logrus.Level {
	if level < int(logrus.PanicLevel) || level > int(logrus.TraceLevel) {
		return logrus.InfoLevel
	}
	return logrus.Level(level)
}

// entry builds an entry enriched with the context trace id
func (l *Logger) entry(ctx context.Context) *logrus.Entry {
	entry := logrus.NewEntry(l.log)
	if traceID := ctxutil.GetTraceID(ctx); traceID != "" {
		entry = entry.WithField("trace_id", traceID)
	}
	return entry
}

// WithFields returns an entry carrying the given fields
func (l *Logger) WithFields(ctx context.Context, fields map[string]any) *logrus.Entry {
	return l.entry(ctx).WithFields(fields)
}

// Debugf logs a debug message
func (l *Logger) Debugf(ctx context.Context, format string, args ...any) {
	l.entry(ctx).Debugf(format, args...)
}

// Infof logs an info message
func (l *Logger) Infof(ctx context.Context, format string, args ...any) {
	l.entry(ctx).Infof(format, args...)
}

// Warnf logs a warning message
func (l *Logger) Warnf(ctx context.Context, format string, args ...any) {
	l.entry(ctx).Warnf(format, args...)
}

// Errorf logs an error message
func (l *Logger) Errorf(ctx context.Context, format string, args ...any) {
	l.entry(ctx).Errorf(format, args...)
}
