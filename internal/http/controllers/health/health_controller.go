// Package health contiene el controller para health checks.
package health

import (
	"net/http"

	"github.com/dropDatabas3/portalgate/internal/http/helpers"
	svc "github.com/dropDatabas3/portalgate/internal/http/services/health"
)

// HealthController maneja las rutas de health check.
type HealthController struct {
	service svc.HealthService
}

func NewHealthController(service svc.HealthService) *HealthController {
	return &HealthController{service: service}
}

// Healthz maneja GET /healthz. Liveness: responde si el proceso está vivo.
func (c *HealthController) Healthz(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz maneja GET /readyz. Readiness: chequea store y cache.
func (c *HealthController) Readyz(w http.ResponseWriter, r *http.Request) {
	response := c.service.Check(r.Context())

	statusCode := http.StatusOK
	if response.Status == "unavailable" {
		statusCode = http.StatusServiceUnavailable
	}

	helpers.WriteJSON(w, statusCode, response)
}
