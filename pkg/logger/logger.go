package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Leveled logger used by the book service.
// Package-level helpers (Debugf/Infof/Warnf/Errorf/Fatalf) over a zap core so
// handlers and the pipeline can log without threading a logger through.

var (
	mu       sync.RWMutex
	level    = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	encoding = "json"
	base     = newLogger(zapcore.Lock(os.Stdout))
)

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return cfg
}

func newLogger(out zapcore.WriteSyncer) *zap.Logger {
	var enc zapcore.Encoder
	if encoding == "console" {
		enc = zapcore.NewConsoleEncoder(encoderConfig())
	} else {
		enc = zapcore.NewJSONEncoder(encoderConfig())
	}
	return zap.New(zapcore.NewCore(enc, out, level))
}

// Init sets the global log level (case-insensitive: debug, info, warn, error, fatal)
// and the output encoding (json or console, default json).
// Call early during startup. Default level is Info.
func Init(l string, format ...string) {
	mu.Lock()
	defer mu.Unlock()
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		level.SetLevel(zapcore.DebugLevel)
	case "warn", "warning":
		level.SetLevel(zapcore.WarnLevel)
	case "error":
		level.SetLevel(zapcore.ErrorLevel)
	case "fatal":
		level.SetLevel(zapcore.FatalLevel)
	default:
		level.SetLevel(zapcore.InfoLevel)
	}
	if len(format) > 0 {
		f := strings.ToLower(strings.TrimSpace(format[0]))
		if f == "console" || f == "json" {
			encoding = f
			base = newLogger(zapcore.Lock(os.Stdout))
		}
	}
}

// L returns the underlying zap logger, for structured fields.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

func sugar() *zap.SugaredLogger { return L().Sugar() }

func Debugf(format string, v ...interface{}) { sugar().Debugf(format, v...) }
func Infof(format string, v ...interface{})  { sugar().Infof(format, v...) }
func Warnf(format string, v ...interface{})  { sugar().Warnf(format, v...) }
func Errorf(format string, v ...interface{}) { sugar().Errorf(format, v...) }

// Fatalf logs and exits the process.
func Fatalf(format string, v ...interface{}) { sugar().Fatalf(format, v...) }

// Println kept for brief messages (maps to Info)
func Println(v ...interface{}) {
	sugar().Info(strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}

func Debug(v string) { Debugf("%s", v) }
func Info(v string)  { Infof("%s", v) }
func Warn(v string)  { Warnf("%s", v) }
func Error(v string) { Errorf("%s", v) }

// Sync flushes buffered entries; call before exit.
func Sync() { _ = L().Sync() }

// LevelString returns the current level as text.
func LevelString() string {
	switch level.Level() {
	case zapcore.DebugLevel:
		return "debug"
	case zapcore.WarnLevel:
		return "warn"
	case zapcore.ErrorLevel:
		return "error"
	case zapcore.FatalLevel:
		return "fatal"
	}
	return "info"
}
