// Package cli holds the small pieces of ambient CLI plumbing shared by
// the actinrings-mc, actinrings-us, and actinrings-monitor binaries.
package cli

import (
	"log"
	"strings"

	"github.com/Biochemical-Networks/actinringsmc/internal/ring"
)

// LogLevel is a CLI's own leveled-logging granularity, independent of
// ring.Logger (which Logger adapts to).
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

func ParseLogLevel(level string) LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return LogLevelDebug
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

// Logger is a leveled wrapper around the standard log package; it
// satisfies ring.Logger so it can be handed straight to ring.Run,
// ring.RunUS, or monitor.NewHandler.
type Logger struct {
	level LogLevel
}

func NewLogger(level string) *Logger {
	return &Logger{level: ParseLogLevel(level)}
}

var _ ring.Logger = (*Logger)(nil)

func (l *Logger) shouldLog(level LogLevel) bool { return level >= l.level }

func (l *Logger) Debugf(format string, v ...any) {
	if l.shouldLog(LogLevelDebug) {
		log.Printf("[DEBUG] "+format, v...)
	}
}

func (l *Logger) Infof(format string, v ...any) {
	if l.shouldLog(LogLevelInfo) {
		log.Printf("[INFO] "+format, v...)
	}
}

func (l *Logger) Warnf(format string, v ...any) {
	if l.shouldLog(LogLevelWarn) {
		log.Printf("[WARN] "+format, v...)
	}
}

func (l *Logger) Errorf(format string, v ...any) {
	if l.shouldLog(LogLevelError) {
		log.Printf("[ERROR] "+format, v...)
	}
}
