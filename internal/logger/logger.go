// Package logger provides logging implementations for fileset-compare runs.
//
// Loggers record the progress of a comparison (directories scanned, counts
// collected, non-fatal walk errors, the final summary) separately from the
// report itself, which always goes to stdout or the --output file.
package logger

import (
	"fmt"
	"time"

	"github.com/harrison/fileset-compare/internal/models"
)

// Logger is implemented by every logger in this package.
type Logger interface {
	LogTrace(message string)
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
	LogCollected(dir models.DirectorySummary)
	LogSummary(result *models.Comparison, duration time.Duration)
}

// MultiLogger forwards every message to each of its loggers.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger creates a MultiLogger; nil loggers are dropped.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	m := &MultiLogger{}
	for _, l := range loggers {
		if l != nil {
			m.loggers = append(m.loggers, l)
		}
	}
	return m
}

// LogTrace forwards a trace-level message.
func (m *MultiLogger) LogTrace(message string) {
	for _, l := range m.loggers {
		l.LogTrace(message)
	}
}

// LogDebug forwards a debug-level message.
func (m *MultiLogger) LogDebug(message string) {
	for _, l := range m.loggers {
		l.LogDebug(message)
	}
}

// LogInfo forwards an info-level message.
func (m *MultiLogger) LogInfo(message string) {
	for _, l := range m.loggers {
		l.LogInfo(message)
	}
}

// LogWarn forwards a warning-level message.
func (m *MultiLogger) LogWarn(message string) {
	for _, l := range m.loggers {
		l.LogWarn(message)
	}
}

// LogError forwards an error-level message.
func (m *MultiLogger) LogError(message string) {
	for _, l := range m.loggers {
		l.LogError(message)
	}
}

// LogCollected forwards a per-directory collection count.
func (m *MultiLogger) LogCollected(dir models.DirectorySummary) {
	for _, l := range m.loggers {
		l.LogCollected(dir)
	}
}

// LogSummary forwards the comparison summary.
func (m *MultiLogger) LogSummary(result *models.Comparison, duration time.Duration) {
	for _, l := range m.loggers {
		l.LogSummary(result, duration)
	}
}

// timestamp returns the current time formatted as "15:04:05" (HH:MM:SS).
func timestamp() string {
	return time.Now().Format("15:04:05")
}

// formatDuration converts a time.Duration to a human-readable string.
// Examples: "850ms", "5s", "1m30s"
func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		minutes := d / time.Minute
		remainder := d % time.Minute
		if remainder < time.Second {
			return fmt.Sprintf("%dm", minutes)
		}
		return fmt.Sprintf("%dm%ds", minutes, remainder/time.Second)
	case d >= time.Second:
		return fmt.Sprintf("%ds", int64(d.Seconds()))
	default:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
}
