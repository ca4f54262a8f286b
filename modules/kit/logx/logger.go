package logx

import (
	"context"

	"go.uber.org/zap"
)

// Logger is the minimal structured logger components depend on.
// Implementations carry ids found in ctx (trace, session) into every entry.
type Logger interface {
	Info(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	Debug(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	WithContext(ctx context.Context) Logger
}

// Nop returns a Logger that drops everything.
func Nop() Logger {
	return NewZapLogger(nil)
}
