package logger

import (
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log = zap.NewNop()

// Init replaces the package logger with a JSON production logger at the
// given level ("debug", "info", "warn", "error").
func Init(level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true

	l, err := cfg.Build()
	if err != nil {
		return err
	}

	log = l
	log.Info("logger initialized", zap.String("level", lvl.String()))
	return nil
}

// Set swaps the package logger. Used by tests to capture output.
func Set(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	log = l
}

func Sync() {
	_ = log.Sync()
}

func Debug(msg string, fields map[string]any) {
	log.Debug(msg, toFields(fields)...)
}

func Info(msg string, fields map[string]any) {
	log.Info(msg, toFields(fields)...)
}

func Warn(msg string, fields map[string]any) {
	log.Warn(msg, toFields(fields)...)
}

func Error(msg string, fields map[string]any) {
	log.Error(msg, toFields(fields)...)
}

func Fatal(msg string, fields map[string]any) {
	log.Fatal(msg, toFields(fields)...)
}

// toFields keeps output stable by sorting keys.
func toFields(fields map[string]any) []zap.Field {
	if len(fields) == 0 {
		return nil
	}

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
