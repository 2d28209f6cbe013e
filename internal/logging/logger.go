// Package logging provides structured logging for the failover simulator.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Level represents the logging level.
type Level int

const (
	// LevelDebug is the most verbose level.
	LevelDebug Level = iota
	// LevelInfo is for informational messages.
	LevelInfo
	// LevelWarn is for warning messages.
	LevelWarn
	// LevelError is for error messages.
	LevelError
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseLevel parses a string into a Level.
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l Level) logrus() logrus.Level {
	switch l {
	case LevelDebug:
		return logrus.DebugLevel
	case LevelWarn:
		return logrus.WarnLevel
	case LevelError:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// Format represents the log output format.
type Format int

const (
	// FormatText outputs logs in human-readable text format.
	FormatText Format = iota
	// FormatJSON outputs logs in JSON format.
	FormatJSON
)

// ParseFormat parses a string into a Format.
func ParseFormat(s string) Format {
	switch s {
	case "json":
		return FormatJSON
	default:
		return FormatText
	}
}

// Logger is the interface for structured logging.
type Logger interface {
	// Debug logs a debug message with optional key-value pairs.
	Debug(msg string, keysAndValues ...interface{})
	// Info logs an info message with optional key-value pairs.
	Info(msg string, keysAndValues ...interface{})
	// Warn logs a warning message with optional key-value pairs.
	Warn(msg string, keysAndValues ...interface{})
	// Error logs an error message with optional key-value pairs.
	Error(msg string, keysAndValues ...interface{})
	// WithRequestID returns a new logger with the given request ID.
	WithRequestID(requestID string) Logger
	// WithSource returns a new logger tagged with the subsystem that emits it.
	WithSource(source string) Logger
	// WithFields returns a new logger with the given fields.
	WithFields(keysAndValues ...interface{}) Logger
	// SetLevel changes the minimum level of this logger and every logger derived from it.
	SetLevel(level Level)
}

// Config holds the logger configuration.
type Config struct {
	Level  string
	Format string
	Output string
}

// logger is the logrus-backed implementation of Logger.
type logger struct {
	entry *logrus.Entry
}

// New creates a new Logger with the given configuration.
func New(cfg Config) Logger {
	var output io.Writer
	switch cfg.Output {
	case "", "stdout":
		output = os.Stdout
	case "stderr":
		output = os.Stderr
	default:
		// Fall back to stdout if the file cannot be opened
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			output = os.Stdout
		} else {
			output = f
		}
	}

	return newLogger(ParseLevel(cfg.Level), ParseFormat(cfg.Format), output)
}

// NewDefault creates a new Logger with default settings.
func NewDefault() Logger {
	return newLogger(LevelInfo, FormatText, os.Stdout)
}

// NewNop creates a no-op logger that discards all output.
func NewNop() Logger {
	return &nopLogger{}
}

func newLogger(level Level, format Format, output io.Writer) *logger {
	base := logrus.New()
	base.SetOutput(output)
	base.SetLevel(level.logrus())

	if format == FormatJSON {
		base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05Z07:00",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "ts",
			},
		})
	} else {
		base.SetFormatter(&logrus.TextFormatter{
			DisableColors:    true,
			FullTimestamp:    true,
			QuoteEmptyFields: true,
		})
	}

	return &logger{entry: logrus.NewEntry(base)}
}

// Debug logs a debug message.
func (l *logger) Debug(msg string, keysAndValues ...interface{}) {
	l.with(keysAndValues).Debug(msg)
}

// Info logs an info message.
func (l *logger) Info(msg string, keysAndValues ...interface{}) {
	l.with(keysAndValues).Info(msg)
}

// Warn logs a warning message.
func (l *logger) Warn(msg string, keysAndValues ...interface{}) {
	l.with(keysAndValues).Warn(msg)
}

// Error logs an error message.
func (l *logger) Error(msg string, keysAndValues ...interface{}) {
	l.with(keysAndValues).Error(msg)
}

// WithRequestID returns a new logger with the given request ID.
func (l *logger) WithRequestID(requestID string) Logger {
	return &logger{entry: l.entry.WithField("request_id", requestID)}
}

// WithSource returns a new logger with the given source.
func (l *logger) WithSource(source string) Logger {
	return &logger{entry: l.entry.WithField("source", source)}
}

// WithFields returns a new logger with the given fields.
func (l *logger) WithFields(keysAndValues ...interface{}) Logger {
	return &logger{entry: l.with(keysAndValues)}
}

// SetLevel changes the level on the shared logrus logger.
func (l *logger) SetLevel(level Level) {
	l.entry.Logger.SetLevel(level.logrus())
}

// with converts alternating key-value pairs into logrus fields.
// Non-string keys and a trailing key without value are dropped.
func (l *logger) with(keysAndValues []interface{}) *logrus.Entry {
	if len(keysAndValues) < 2 {
		return l.entry
	}
	fields := make(logrus.Fields, len(keysAndValues)/2)
	for i := 0; i < len(keysAndValues)-1; i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			fields[key] = keysAndValues[i+1]
		}
	}
	return l.entry.WithFields(fields)
}

// nopLogger is a no-op logger that discards all output.
type nopLogger struct{}

func (n *nopLogger) Debug(_ string, _ ...interface{})   {}
func (n *nopLogger) Info(_ string, _ ...interface{})    {}
func (n *nopLogger) Warn(_ string, _ ...interface{})    {}
func (n *nopLogger) Error(_ string, _ ...interface{})   {}
func (n *nopLogger) WithRequestID(_ string) Logger      { return n }
func (n *nopLogger) WithSource(_ string) Logger         { return n }
func (n *nopLogger) WithFields(_ ...interface{}) Logger { return n }
func (n *nopLogger) SetLevel(_ Level)                   {}
