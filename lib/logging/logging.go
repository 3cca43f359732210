// Package logging provides leveled, named loggers for the fieldstate
// tooling. Output goes through a standard library logger with a fixed
// column format so interleaved component logs stay readable.
package logging

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
)

// LogLevel orders the supported verbosity levels.
type LogLevel int

const (
	LevelError LogLevel = iota
	LevelWarning
	LevelInfo
	LevelDebug
)

// ILogger is the leveled logging interface used across the tooling.
type ILogger interface {
	SetLevel(level LogLevel)
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warningf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// --------------------------------------------------------------------------
// Implementation
// --------------------------------------------------------------------------

// fsLogger implements ILogger with custom formatting.
type fsLogger struct {
	name   string
	level  LogLevel
	logger *log.Logger
}

func (l *fsLogger) SetLevel(level LogLevel) {
	l.level = level
}

func (l *fsLogger) Debugf(format string, args ...interface{}) {
	if l.level >= LevelDebug {
		l.log("DEBUG", format, args...)
	}
}

func (l *fsLogger) Infof(format string, args ...interface{}) {
	if l.level >= LevelInfo {
		l.log("INFO", format, args...)
	}
}

func (l *fsLogger) Warningf(format string, args ...interface{}) {
	if l.level >= LevelWarning {
		l.log("WARN", format, args...)
	}
}

func (l *fsLogger) Errorf(format string, args ...interface{}) {
	if l.level >= LevelError {
		l.log("ERROR", format, args...)
	}
}

// log formats and writes a log message. this internal helper is used by the public methods
func (l *fsLogger) log(levelStr string, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	l.logger.Printf("%-5s | %-15s | %s", levelStr, l.name, message)
}

// --------------------------------------------------------------------------
// Logger Registry
// --------------------------------------------------------------------------

var (
	mu      sync.Mutex
	loggers = map[string]*fsLogger{}
)

// GetLogger returns the named logger, creating it at INFO level on first
// use. The same instance is returned for the same name.
func GetLogger(name string) ILogger {
	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[name]; ok {
		return l
	}
	l := &fsLogger{
		name:   name,
		level:  LevelInfo,
		logger: log.New(os.Stdout, "", log.Ldate|log.Ltime),
	}
	loggers[name] = l
	return l
}

// ParseLevel converts a string level to a LogLevel.
func ParseLevel(level string) (LogLevel, error) {
	switch strings.ToLower(level) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warning", "warn":
		return LevelWarning, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("invalid log level: %s. must be one of debug, info, warn, error", level)
	}
}
