// Package portal contiene el controller del portal activo, selector y menú.
package portal

import (
	"errors"
	"net/http"

	dto "github.com/dropDatabas3/portalgate/internal/http/dto/portal"
	httperrors "github.com/dropDatabas3/portalgate/internal/http/errors"
	"github.com/dropDatabas3/portalgate/internal/http/helpers"
	mw "github.com/dropDatabas3/portalgate/internal/http/middlewares"
	svc "github.com/dropDatabas3/portalgate/internal/http/services/portal"
	"github.com/dropDatabas3/portalgate/internal/observability/logger"
	portalx "github.com/dropDatabas3/portalgate/internal/portal"
	"github.com/dropDatabas3/portalgate/internal/store/core"
)

// PortalController maneja las rutas del portal activo.
type PortalController struct {
	service svc.PortalService
}

func NewPortalController(service svc.PortalService) *PortalController {
	return &PortalController{service: service}
}

// Select maneja POST /v1/portal/select
func (c *PortalController) Select(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("PortalController.Select"))

	var req dto.SelectRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	if req.PortalID == "" {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("portal_id is required"))
		return
	}

	actor := mw.GetActor(ctx)
	if err := c.service.Select(ctx, actor, core.PortalID(req.PortalID)); err != nil {
		switch {
		case errors.Is(err, portalx.ErrUnauthorizedPortal):
			httperrors.WriteError(w, httperrors.ErrPortalNotAllowed)
		case errors.Is(err, core.ErrNotFound):
			httperrors.WriteError(w, httperrors.ErrPortalNotFound)
		default:
			log.Error("portal select failed", logger.PortalID(req.PortalID), logger.Err(err))
			httperrors.WriteError(w, httperrors.ErrServiceUnavailable)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Active maneja GET /v1/portal/active
func (c *PortalController) Active(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("PortalController.Active"))

	actor := mw.GetActor(ctx)
	resp, err := c.service.Active(ctx, actor)
	if err != nil {
		log.Error("active portal lookup failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrServiceUnavailable)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, resp)
}

// Options maneja GET /v1/portal/options
func (c *PortalController) Options(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("PortalController.Options"))

	actor := mw.GetActor(ctx)
	resourceID := core.ResourceID(r.URL.Query().Get("resource_id"))

	resp, err := c.service.Options(ctx, actor, resourceID)
	if err != nil {
		log.Error("switcher options failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrServiceUnavailable)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, resp)
}

// Menu maneja GET /v1/portal/menu
func (c *PortalController) Menu(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("PortalController.Menu"))

	actor := mw.GetActor(ctx)
	resp, err := c.service.Menu(ctx, actor)
	if err != nil {
		log.Error("menu resolve failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrServiceUnavailable)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, resp)
}
