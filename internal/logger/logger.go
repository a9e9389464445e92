// Package logger provides verbose logging for the drafter CLI.
// When verbose mode is enabled via the --verbose flag, messages are
// written to stderr as "[LEVEL] message" lines. Outline commands that
// are ignored (unknown section, rejected depth jump) are reported here
// instead of being returned to the caller.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  zapcore.WriteSyncer = zapcore.Lock(zapcore.AddSync(os.Stderr))
	sugar                       = newSugar(output)
)

func newSugar(w zapcore.WriteSyncer) *zap.SugaredLogger {
	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:       "msg",
		LevelKey:         "level",
		EncodeLevel:      encodeLevel,
		ConsoleSeparator: " ",
		LineEnding:       zapcore.DefaultLineEnding,
	})
	core := zapcore.NewCore(enc, w, zapcore.DebugLevel)
	return zap.New(core).Sugar()
}

func encodeLevel(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + l.CapitalString() + "]")
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = zapcore.Lock(zapcore.AddSync(w))
	sugar = newSugar(output)
}

// active returns the current logger, or nil when verbose mode is off.
func active() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	if !verbose {
		return nil
	}
	return sugar
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	if l := active(); l != nil {
		l.Debugf(format, args...)
	}
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	if l := active(); l != nil {
		l.Infof(format, args...)
	}
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	if l := active(); l != nil {
		l.Warnf(format, args...)
	}
}

// Error prints an error message if verbose mode is enabled.
func Error(format string, args ...any) {
	if l := active(); l != nil {
		l.Errorf(format, args...)
	}
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}
