package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	slogzap "github.com/samber/slog-zap/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

var globalLogger *slog.Logger // Один глобальный логгер поверх zap

// NewZapLogger builds the zap logger used as the backend of every log record.
// Development mode switches to the console encoder; output goes to stderr so
// that CLI output on stdout stays clean.
func NewZapLogger(levelStr string, development bool) (*zap.Logger, error) {
	level, err := ParseLevel(levelStr)
	if err != nil {
		return nil, err
	}

	var cfg zap.Config
	if development {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	z, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build zap logger: %w", err)
	}
	return z, nil
}

// ParseLevel maps a config level string onto a zap level.
func ParseLevel(levelStr string) (zapcore.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(levelStr)) {
	case "DEBUG":
		return zapcore.DebugLevel, nil
	case "", "INFO":
		return zapcore.InfoLevel, nil
	case "WARN", "WARNING":
		return zapcore.WarnLevel, nil
	case "ERROR":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q", levelStr)
	}
}

// InitSlog routes the global slog logger (and this package's helpers) through z.
func InitSlog(z *zap.Logger) {
	setGlobal(zapslog.NewHandler(z.Core()))
}

// InitSlogZap does the same as InitSlog through the slog-zap handler, which
// filters records at level before they reach zap.
func InitSlogZap(z *zap.Logger, level zapcore.Level) {
	opts := slogzap.Option{
		Level:  SlogLevel(level),
		Logger: z,
	}
	setGlobal(opts.NewZapHandler())
}

// SlogLevel maps a zap level onto the closest slog level.
func SlogLevel(level zapcore.Level) slog.Level {
	switch {
	case level <= zapcore.DebugLevel:
		return slog.LevelDebug
	case level == zapcore.InfoLevel:
		return slog.LevelInfo
	case level == zapcore.WarnLevel:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

func setGlobal(h slog.Handler) {
	globalLogger = slog.New(h)
	slog.SetDefault(globalLogger)
}

// ensureInitialized проверяет, инициализирован ли логгер.
func ensureInitialized() {
	if globalLogger == nil {
		globalLogger = slog.Default()
	}
}

// Debug logs a message at DebugLevel.
func Debug(msg string, args ...any) {
	ensureInitialized()
	if globalLogger.Enabled(context.Background(), slog.LevelDebug) {
		globalLogger.Debug(msg, args...)
	}
}

// Info logs a message at InfoLevel.
func Info(msg string, args ...any) {
	ensureInitialized()
	globalLogger.Info(msg, args...)
}

// Warn logs a message at WarnLevel.
func Warn(msg string, args ...any) {
	ensureInitialized()
	globalLogger.Warn(msg, args...)
}

// Error logs a message at ErrorLevel.
func Error(msg string, args ...any) {
	ensureInitialized()
	globalLogger.Error(msg, args...)
}

// Fatal logs a message at ErrorLevel then exits.
func Fatal(msg string, args ...any) {
	ensureInitialized()
	// Логируем всегда перед выходом, т.к. это Fatal
	globalLogger.Error(msg, args...)
	os.Exit(1)
}
