// Package logger provides centralized stderr logging for aifr.
// Model output always goes to stdout; every diagnostic goes through here.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Logger is the process-wide logger instance.
var Logger *log.Logger

func init() {
	Logger = log.NewWithOptions(os.Stderr, log.Options{})
	Logger.SetTimeFormat("")
	Logger.SetLevel(log.WarnLevel)
	Logger.SetStyles(styles())
}

// Configure sets the log level from an explicit flag, falling back to
// AIFR_LOG_LEVEL, falling back to "warn" (quiet by default: stdout carries
// model output, stderr should stay uncluttered unless asked).
func Configure(explicitLevel string) {
	level := explicitLevel
	if level == "" {
		level = strings.ToLower(os.Getenv("AIFR_LOG_LEVEL"))
	}
	if level == "" {
		level = "warn"
	}
	Logger.SetLevel(parseLevel(level))
}

func parseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.WarnLevel
	}
}

// SetOutput redirects log output, e.g. so a test can capture stderr
// diagnostics.
func SetOutput(w io.Writer) {
	Logger.SetOutput(w)
}

func styles() *log.Styles {
	s := log.DefaultStyles()

	s.Levels[log.WarnLevel] = lipgloss.NewStyle().
		SetString("WARN").
		Padding(0, 1, 0, 1).
		Background(lipgloss.Color("214")).
		Foreground(lipgloss.Color("0"))

	s.Levels[log.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERROR").
		Padding(0, 1, 0, 1).
		Background(lipgloss.Color("196")).
		Foreground(lipgloss.Color("15"))

	s.Keys["provider"] = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	s.Keys["agent"] = lipgloss.NewStyle().Foreground(lipgloss.Color("51"))
	s.Keys["model"] = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))
	s.Keys["request_id"] = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	return s
}

// Debug logs a debug-level line.
func Debug(msg interface{}, keyvals ...interface{}) { Logger.Debug(msg, keyvals...) }

// Info logs an info-level line.
func Info(msg interface{}, keyvals ...interface{}) { Logger.Info(msg, keyvals...) }

// Warn logs a warn-level line.
func Warn(msg interface{}, keyvals ...interface{}) { Logger.Warn(msg, keyvals...) }

// Error logs an error-level line.
func Error(msg interface{}, keyvals ...interface{}) { Logger.Error(msg, keyvals...) }

// With returns a child logger with the given key-value pairs attached to
// every subsequent line, used to tag a whole invocation with a request id.
func With(keyvals ...interface{}) *log.Logger {
	return Logger.With(keyvals...)
}
