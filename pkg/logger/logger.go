package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

// std is the process-wide logger instance. All package-level helpers write
// through it so that every module shares one sink and one format.
var (
	std  = logrus.New()
	mu   sync.Mutex
	file *os.File
)

func init() {
	std.SetOutput(os.Stdout)
	std.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	std.SetLevel(logrus.InfoLevel)
}

// InitLog redirects log output to the given file path in addition to stdout.
// The parent directory is created if it does not exist.
func InitLog(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file %q: %w", path, err)
	}
	file = f
	std.SetOutput(io.MultiWriter(os.Stdout, f))
	return nil
}

// FlushLog closes the log file, if one was opened via InitLog.
func FlushLog() {
	mu.Lock()
	defer mu.Unlock()

	if file != nil {
		_ = file.Sync()
		_ = file.Close()
		file = nil
		std.SetOutput(os.Stdout)
	}
}

// SetLevel changes the minimum level emitted by the shared logger.
// Accepted values: "debug", "info", "warn", "error".
func SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	std.SetLevel(lvl)
	return nil
}

// WithModule returns an entry tagged with the given module name, for
// components that want to hold their own leveled sink.
func WithModule(module string) *logrus.Entry {
	return std.WithField("module", module)
}

func Debug(format string, args ...interface{}) { std.Debugf(format, args...) }
func Info(format string, args ...interface{})  { std.Infof(format, args...) }
func Warn(format string, args ...interface{})  { std.Warnf(format, args...) }
func Error(format string, args ...interface{}) { std.Errorf(format, args...) }

// The X variants tag the record with a module field, used by modules that
// log frequently enough to deserve filtering.

func DebugX(module, format string, args ...interface{}) {
	std.WithField("module", module).Debugf(format, args...)
}

func InfoX(module, format string, args ...interface{}) {
	std.WithField("module", module).Infof(format, args...)
}

func WarnX(module, format string, args ...interface{}) {
	std.WithField("module", module).Warnf(format, args...)
}
