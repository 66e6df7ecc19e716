package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger is the structured logger handed to usecases and services.
// Fields are passed as alternating key/value pairs.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

type logrusLogger struct {
	entry *logrus.Entry
}

var std = logrus.New()

func init() {
	configure(std, "info", "development")
}

// Setup configures the process-wide logger from the application settings.
func Setup(level, environment string) {
	configure(std, level, environment)
}

func configure(l *logrus.Logger, level, environment string) {
	l.SetOutput(os.Stdout)
	if environment == "production" {
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05"})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	parsed, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		parsed = logrus.InfoLevel
	}
	l.SetLevel(parsed)
}

// New returns a Logger tagged with the given component name.
func New(component string) Logger {
	return &logrusLogger{entry: std.WithField("component", component)}
}

// Nop discards everything. Used in tests.
func Nop() Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &logrusLogger{entry: logrus.NewEntry(l)}
}

func (l *logrusLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(fields(keysAndValues)).Debug(msg)
}

func (l *logrusLogger) Info(msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(fields(keysAndValues)).Info(msg)
}

func (l *logrusLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(fields(keysAndValues)).Warn(msg)
}

func (l *logrusLogger) Error(msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(fields(keysAndValues)).Error(msg)
}

func fields(keysAndValues []interface{}) logrus.Fields {
	f := logrus.Fields{}
	for i := 0; i < len(keysAndValues); i += 2 {
		key := fmt.Sprint(keysAndValues[i])
		if i+1 >= len(keysAndValues) {
			f[key] = "(missing)"
			break
		}
		value := keysAndValues[i+1]
		if err, ok := value.(error); ok {
			value = err.Error()
		}
		f[key] = value
	}
	return f
}

// Printf-style helpers for handlers and infrastructure code.

func Info(format string, v ...interface{}) {
	std.Infof(format, v...)
}

func Error(format string, v ...interface{}) {
	std.Errorf(format, v...)
}

func Debug(format string, v ...interface{}) {
	std.Debugf(format, v...)
}

func Warn(format string, v ...interface{}) {
	std.Warnf(format, v...)
}

func Fatal(format string, v ...interface{}) {
	std.Fatalf(format, v...)
}
