package logger

import (
	"log/slog"

	"portfolio_analyzer/internal/app/port"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
)

// slogAdapter implements port.Logger on top of a slog.Logger.
type slogAdapter struct {
	l *slog.Logger
}

// NewSlogAdapter returns a port.Logger writing to the package's global logger.
func NewSlogAdapter() port.Logger {
	ensureInitialized()
	return &slogAdapter{l: globalLogger}
}

// NewZapAdapter returns a port.Logger writing to the given zap logger.
func NewZapAdapter(zapLogger *zap.Logger) port.Logger {
	return &slogAdapter{l: slog.New(zapslog.NewHandler(zapLogger.Core()))}
}

// NewNopAdapter returns a port.Logger that discards everything.
func NewNopAdapter() port.Logger {
	return NewZapAdapter(zap.NewNop())
}

func (a *slogAdapter) Info(msg string, args ...any) {
	a.l.Info(msg, args...)
}

func (a *slogAdapter) Debug(msg string, args ...any) {
	a.l.Debug(msg, args...)
}

func (a *slogAdapter) Warn(msg string, args ...any) {
	a.l.Warn(msg, args...)
}

func (a *slogAdapter) Error(msg string, args ...any) {
	a.l.Error(msg, args...)
}
