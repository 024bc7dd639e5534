// Package logger provides the process-wide structured logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls where and how log lines are written.
type Options struct {
	Name       string
	Level      string
	Format     string // "json" or "text"
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Output     io.Writer
}

var (
	mu   sync.RWMutex
	root hclog.Logger = hclog.New(&hclog.LoggerOptions{
		Name:  "cinevault",
		Level: hclog.Info,
	})
	rotator *lumberjack.Logger
)

// Configure replaces the root logger. Loggers obtained from Named before the
// call keep their previous sink.
func Configure(opts Options) hclog.Logger {
	mu.Lock()
	defer mu.Unlock()

	if rotator != nil {
		rotator.Close()
		rotator = nil
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	if opts.FilePath != "" {
		rotator = &lumberjack.Logger{
			Filename:   opts.FilePath,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   true,
		}
		out = io.MultiWriter(out, rotator)
	}

	name := opts.Name
	if name == "" {
		name = "cinevault"
	}

	root = hclog.New(&hclog.LoggerOptions{
		Name:            name,
		Level:           parseLevel(opts.Level),
		Output:          out,
		JSONFormat:      strings.EqualFold(opts.Format, "json"),
		IncludeLocation: false,
	})
	return root
}

// SetLevel changes the level of the root logger in place.
func SetLevel(level string) {
	mu.RLock()
	defer mu.RUnlock()
	root.SetLevel(parseLevel(level))
}

// Named returns a sub-logger for a component.
func Named(name string) hclog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root.Named(name)
}

// Root returns the root logger.
func Root() hclog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root
}

func parseLevel(level string) hclog.Level {
	if level == "" {
		return hclog.Info
	}
	if l := hclog.LevelFromString(level); l != hclog.NoLevel {
		return l
	}
	return hclog.Info
}

// Info logs informational messages (supports both printf format and key/value pairs)
func Info(format string, args ...interface{}) {
	msg, kv := split(format, args)
	Root().Info(msg, kv...)
}

// Warn logs warning messages
func Warn(format string, args ...interface{}) {
	msg, kv := split(format, args)
	Root().Warn(msg, kv...)
}

// Error logs error messages
func Error(format string, args ...interface{}) {
	msg, kv := split(format, args)
	Root().Error(msg, kv...)
}

// Debug logs debug messages
func Debug(format string, args ...interface{}) {
	msg, kv := split(format, args)
	Root().Debug(msg, kv...)
}

// split treats args as printf arguments when the message carries verbs and
// as key/value pairs otherwise.
func split(format string, args []interface{}) (string, []interface{}) {
	if len(args) > 0 && strings.Contains(format, "%") {
		return fmt.Sprintf(format, args...), nil
	}
	return format, args
}
