// Package logger owns the process-wide structured logger.
//
// Until Init is called every helper is a no-op, so packages may log freely
// from tests without setup.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileName is the log file written inside Config.Dir.
const FileName = "fitlog.log"

var (
	mu     sync.RWMutex
	logger *log.Logger
)

// Config holds logger configuration.
type Config struct {
	Debug bool
	Dir   string
	// Writer overrides the rotating file writer when set.
	Writer io.Writer
}

// Path returns the log file path for dir.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// Init installs the global logger.
func Init(cfg Config) error {
	writer := cfg.Writer
	if writer == nil {
		if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
			return err
		}
		writer = &lumberjack.Logger{
			Filename:   Path(cfg.Dir),
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
	}

	level := log.InfoLevel
	if cfg.Debug {
		level = log.DebugLevel
		writer = io.MultiWriter(os.Stderr, writer)
	}

	l := log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "fitlog",
	})

	mu.Lock()
	logger = l
	mu.Unlock()
	return nil
}

func current() *log.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Debug logs a debug message.
func Debug(msg string, keyvals ...any) {
	if l := current(); l != nil {
		l.Debug(msg, keyvals...)
	}
}

// Info logs an info message.
func Info(msg string, keyvals ...any) {
	if l := current(); l != nil {
		l.Info(msg, keyvals...)
	}
}

// Warn logs a warning message.
func Warn(msg string, keyvals ...any) {
	if l := current(); l != nil {
		l.Warn(msg, keyvals...)
	}
}

// Error logs an error message.
func Error(msg string, keyvals ...any) {
	if l := current(); l != nil {
		l.Error(msg, keyvals...)
	}
}
