// Package router arma el árbol de rutas del servicio.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	accessctrl "github.com/dropDatabas3/portalgate/internal/http/controllers/access"
	adminctrl "github.com/dropDatabas3/portalgate/internal/http/controllers/admin"
	healthctrl "github.com/dropDatabas3/portalgate/internal/http/controllers/health"
	portalctrl "github.com/dropDatabas3/portalgate/internal/http/controllers/portal"
	sessionctrl "github.com/dropDatabas3/portalgate/internal/http/controllers/session"
	mw "github.com/dropDatabas3/portalgate/internal/http/middlewares"
)

// Deps contiene los controllers y la configuración que el router necesita.
type Deps struct {
	Access  *accessctrl.AccessController
	Portal  *portalctrl.PortalController
	Session *sessionctrl.SessionController
	Admin   *adminctrl.AdminController
	Health  *healthctrl.HealthController

	// Secreto HMAC del IdP para validar bearer tokens. Vacío deshabilita la
	// identidad: todo request queda como anónimo.
	JWTSecret []byte
}

// New construye el router completo con middlewares y rutas montadas.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.WithRequestID())
	r.Use(mw.WithRecover())
	if len(deps.JWTSecret) > 0 {
		r.Use(mw.WithIdentity(deps.JWTSecret))
	}
	r.Use(mw.WithLogging())

	// Infra
	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		// Resolución de acceso: abierta, el anónimo también recibe veredicto.
		r.Post("/access/resolve", deps.Access.Resolve)
		r.Get("/resources/visible", deps.Access.Visible)

		// Destino post-login: admite anónimo (va al home).
		r.Get("/session/landing", deps.Session.Landing)

		r.Route("/portal", func(r chi.Router) {
			// Menú: abierto, el filtro sabe qué mostrarle a cada actor.
			r.Get("/menu", deps.Portal.Menu)

			// Portal activo: requiere usuario autenticado.
			r.Group(func(r chi.Router) {
				r.Use(mw.RequireUser())
				r.Post("/select", deps.Portal.Select)
				r.Get("/active", deps.Portal.Active)
				r.Get("/options", deps.Portal.Options)
			})
		})

		// Administración: sólo admins.
		r.Route("/admin", func(r chi.Router) {
			r.Use(mw.RequireAdmin())
			r.Get("/access-log", deps.Admin.AccessLog)
			r.Post("/explain", deps.Admin.Explain)
		})
	})

	return r
}
