// Package session contiene el controller del destino post-login.
package session

import (
	"net/http"

	httperrors "github.com/dropDatabas3/portalgate/internal/http/errors"
	"github.com/dropDatabas3/portalgate/internal/http/helpers"
	mw "github.com/dropDatabas3/portalgate/internal/http/middlewares"
	svc "github.com/dropDatabas3/portalgate/internal/http/services/session"
	"github.com/dropDatabas3/portalgate/internal/observability/logger"
)

// SessionController maneja las rutas de sesión.
type SessionController struct {
	service svc.SessionService
}

func NewSessionController(service svc.SessionService) *SessionController {
	return &SessionController{service: service}
}

// Landing maneja GET /v1/session/landing
func (c *SessionController) Landing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("SessionController.Landing"))

	actor := mw.GetActor(ctx)
	resp, err := c.service.Landing(ctx, actor)
	if err != nil {
		log.Error("landing resolve failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrServiceUnavailable)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, resp)
}
