package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey struct{}

// ToContext guarda un logger en el contexto. Los middlewares lo usan para
// propagar el logger del request (request_id, actor) hacia services y
// controllers.
func ToContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// From devuelve el logger del contexto, o el singleton si no hay ninguno.
// Así From(ctx) sirve en cualquier capa sin importar si el request pasó por
// el middleware de logging.
func From(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return L()
	}
	if v := ctx.Value(ctxKey{}); v != nil {
		if l, ok := v.(*zap.Logger); ok {
			return l
		}
	}
	return L()
}
