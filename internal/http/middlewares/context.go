package middlewares

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/dropDatabas3/portalgate/internal/store/core"
)

type ctxKey int

const (
	ctxKeyRequestID ctxKey = iota
	ctxKeyActor
)

func setRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, rid)
}

// GetRequestID devuelve el request ID del contexto, o "" si no hay.
func GetRequestID(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyRequestID).(string); ok {
		return v
	}
	return ""
}

// WithActor guarda el actor autenticado en el contexto.
func WithActor(ctx context.Context, a core.Actor) context.Context {
	return context.WithValue(ctx, ctxKeyActor, a)
}

// GetActor devuelve el actor del contexto. Si nadie lo seteó, devuelve el
// actor anónimo, que es el default seguro para toda decisión de acceso.
func GetActor(ctx context.Context) core.Actor {
	if v, ok := ctx.Value(ctxKeyActor).(core.Actor); ok {
		return v
	}
	return core.Actor{Anonymous: true}
}

// clientIP extrae la IP del cliente respetando X-Forwarded-For.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
