package logging

import (
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Fields map[string]interface{}

var (
	level  = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	logger = newLogger(zapcore.AddSync(os.Stderr))
)

func newLogger(out zapcore.WriteSyncer) *zap.Logger {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "ts"
	enc.MessageKey = "msg"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), out, level)
	return zap.New(core)
}

// Init sets the minimum level from its name ("debug", "info", "warn",
// "error"). Unknown names keep the current level.
func Init(name string) {
	SetLevel(name)
}

func SetLevel(name string) {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(name)))); err != nil {
		return
	}
	level.SetLevel(l)
}

// SetOutput redirects log lines, mainly for tests.
func SetOutput(out zapcore.WriteSyncer) {
	logger = newLogger(out)
}

// Sync flushes buffered entries; call it before exit.
func Sync() {
	_ = logger.Sync()
}

func zapFields(fields Fields) []zap.Field {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		out = append(out, zap.Any(k, fields[k]))
	}
	return out
}

// Debug logs a verbose message with optional fields.
func Debug(msg string, fields Fields) {
	logger.Debug(msg, zapFields(fields)...)
}

// Info logs an informational message with optional fields.
func Info(msg string, fields Fields) {
	logger.Info(msg, zapFields(fields)...)
}

func Warn(msg string, fields Fields) {
	logger.Warn(msg, zapFields(fields)...)
}

// Error logs an error message and includes the error text in the fields.
func Error(msg string, err error, fields Fields) {
	zf := zapFields(fields)
	if err != nil {
		zf = append(zf, zap.Error(err))
	}
	logger.Error(msg, zf...)
}

// Fatal logs a fatal error and exits the process.
func Fatal(msg string, err error, fields Fields) {
	zf := zapFields(fields)
	if err != nil {
		zf = append(zf, zap.Error(err))
	}
	logger.Fatal(msg, zf...)
}
