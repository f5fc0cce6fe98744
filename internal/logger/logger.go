// Package logger is loaderhub's process-wide diagnostic log. It stays
// silent until SetVerbose(true) (the --verbose flag or LOADERHUB_VERBOSE),
// then writes "[LEVEL] message" lines through zap.
package logger

import (
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	lock    sync.RWMutex
	enabled bool
	sink    io.Writer = os.Stderr
	sugar             = zap.NewNop().Sugar()
)

// SetVerbose switches logging on or off.
func SetVerbose(on bool) {
	lock.Lock()
	defer lock.Unlock()
	enabled = on
	rebuild()
}

// IsVerbose reports whether messages are written.
func IsVerbose() bool {
	lock.RLock()
	defer lock.RUnlock()
	return enabled
}

// SetOutput redirects messages to w (os.Stderr by default).
func SetOutput(w io.Writer) {
	lock.Lock()
	defer lock.Unlock()
	sink = w
	rebuild()
}

// rebuild swaps the zap logger. The caller holds lock.
func rebuild() {
	if !enabled {
		sugar = zap.NewNop().Sugar()
		return
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = ""
	encoderConfig.NameKey = ""
	encoderConfig.CallerKey = ""
	encoderConfig.StacktraceKey = ""
	encoderConfig.ConsoleSeparator = " "
	encoderConfig.EncodeLevel = bracketLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(zapcore.AddSync(sink)),
		zapcore.DebugLevel,
	)
	sugar = zap.New(core).Sugar()
}

// bracketLevelEncoder renders levels as [DEBUG], [INFO], [WARN].
func bracketLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + level.CapitalString() + "]")
}

func current() *zap.SugaredLogger {
	lock.RLock()
	defer lock.RUnlock()
	return sugar
}

// Debug traces a pipeline step.
func Debug(format string, args ...any) {
	current().Debugf(format, args...)
}

// Section marks the start of a stage, e.g. "walk".
func Section(name string) {
	current().Infof("=== %s ===", name)
}

// Info logs a summary line.
func Info(format string, args ...any) {
	current().Infof(format, args...)
}

// Warn logs something skipped or ignored, such as a binary blob.
func Warn(format string, args ...any) {
	current().Warnf(format, args...)
}
