// Package access contiene el controller de resolución de acceso.
package access

import (
	"errors"
	"net/http"

	dto "github.com/dropDatabas3/portalgate/internal/http/dto/access"
	httperrors "github.com/dropDatabas3/portalgate/internal/http/errors"
	"github.com/dropDatabas3/portalgate/internal/http/helpers"
	mw "github.com/dropDatabas3/portalgate/internal/http/middlewares"
	svc "github.com/dropDatabas3/portalgate/internal/http/services/access"
	"github.com/dropDatabas3/portalgate/internal/observability/logger"
	"github.com/dropDatabas3/portalgate/internal/store/core"
)

// AccessController maneja las rutas de decisión de acceso.
type AccessController struct {
	service svc.AccessService
}

func NewAccessController(service svc.AccessService) *AccessController {
	return &AccessController{service: service}
}

// Resolve maneja POST /v1/access/resolve
func (c *AccessController) Resolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("AccessController.Resolve"))

	var req dto.ResolveRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	if req.ResourceID == "" {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("resource_id is required"))
		return
	}

	actor := mw.GetActor(ctx)
	resp, err := c.service.Resolve(ctx, actor, core.ResourceID(req.ResourceID))
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			httperrors.WriteError(w, httperrors.ErrResourceNotFound)
		default:
			// Falla de store o cache: negar, nunca asumir contenido público.
			log.Error("resolve failed", logger.ResourceID(req.ResourceID), logger.Err(err))
			httperrors.WriteError(w, httperrors.ErrServiceUnavailable)
		}
		return
	}

	helpers.WriteJSON(w, http.StatusOK, resp)
}

// Visible maneja GET /v1/resources/visible
func (c *AccessController) Visible(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("AccessController.Visible"))

	actor := mw.GetActor(ctx)
	resp, err := c.service.Visible(ctx, actor)
	if err != nil {
		log.Error("visible listing failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrServiceUnavailable)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, resp)
}
