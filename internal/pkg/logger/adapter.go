package logger

import (
	"log/slog"

	"points_checker/internal/app/port"
)

// slogAdapter реализует интерфейс port.Logger поверх slog.
// Без привязанного логгера пишет через глобальные функции пакета.
type slogAdapter struct {
	bound *slog.Logger
}

// NewSlogAdapter создает новый экземпляр slogAdapter.
func NewSlogAdapter() port.Logger {
	return &slogAdapter{}
}

func (a *slogAdapter) Info(msg string, args ...any) {
	if a.bound != nil {
		a.bound.Info(msg, args...)
		return
	}
	Info(msg, args...)
}

func (a *slogAdapter) Debug(msg string, args ...any) {
	if a.bound != nil {
		a.bound.Debug(msg, args...)
		return
	}
	Debug(msg, args...)
}

func (a *slogAdapter) Warn(msg string, args ...any) {
	if a.bound != nil {
		a.bound.Warn(msg, args...)
		return
	}
	Warn(msg, args...)
}

func (a *slogAdapter) Error(msg string, args ...any) {
	if a.bound != nil {
		a.bound.Error(msg, args...)
		return
	}
	Error(msg, args...)
}

// With returns an adapter whose records always carry args.
func (a *slogAdapter) With(args ...any) port.Logger {
	base := a.bound
	if base == nil {
		ensureInitialized()
		base = globalLogger
	}
	return &slogAdapter{bound: base.With(args...)}
}
