package middlewares

import (
	"fmt"
	"net/http"
	"strings"

	jwtv5 "github.com/golang-jwt/jwt/v5"

	"github.com/dropDatabas3/portalgate/internal/http/errors"
	"github.com/dropDatabas3/portalgate/internal/store/core"
)

// WithIdentity valida Authorization: Bearer <JWT> firmado por el IdP y guarda
// el actor en el contexto. Sin header, o con token inválido, el request sigue
// como anónimo: la identidad acá es opcional, la política de acceso decide
// después qué puede ver cada uno. Claims esperadas: sub (user id) y admin.
func WithIdentity(secret []byte) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := actorFromBearer(r, secret)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

// RequireUser exige un actor autenticado. Debe usarse después de WithIdentity.
func RequireUser() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if GetActor(r.Context()).Anonymous {
				errors.WriteError(w, errors.ErrTokenMissing)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin exige un actor administrador. Debe usarse después de WithIdentity.
func RequireAdmin() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := GetActor(r.Context())
			if actor.Anonymous {
				errors.WriteError(w, errors.ErrTokenMissing)
				return
			}
			if !actor.Admin {
				errors.WriteError(w, errors.ErrForbidden.WithDetail("admin required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func actorFromBearer(r *http.Request, secret []byte) (core.Actor, bool) {
	ah := strings.TrimSpace(r.Header.Get("Authorization"))
	if ah == "" || !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
		return core.Actor{}, false
	}
	raw := strings.TrimSpace(ah[len("Bearer "):])

	claims := jwtv5.MapClaims{}
	tok, err := jwtv5.ParseWithClaims(raw, claims, func(t *jwtv5.Token) (any, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	}, jwtv5.WithValidMethods([]string{"HS256"}))
	if err != nil || !tok.Valid {
		return core.Actor{}, false
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return core.Actor{}, false
	}
	admin, _ := claims["admin"].(bool)
	return core.Actor{ID: core.UserID(sub), Admin: admin}, true
}
