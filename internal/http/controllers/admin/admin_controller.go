// Package admin contiene los controllers administrativos.
package admin

import (
	"errors"
	"net/http"
	"strconv"

	dto "github.com/dropDatabas3/portalgate/internal/http/dto/admin"
	httperrors "github.com/dropDatabas3/portalgate/internal/http/errors"
	"github.com/dropDatabas3/portalgate/internal/http/helpers"
	mw "github.com/dropDatabas3/portalgate/internal/http/middlewares"
	svc "github.com/dropDatabas3/portalgate/internal/http/services/admin"
	"github.com/dropDatabas3/portalgate/internal/observability/logger"
	portalx "github.com/dropDatabas3/portalgate/internal/portal"
	"github.com/dropDatabas3/portalgate/internal/store/core"
)

// AdminController maneja las rutas administrativas.
type AdminController struct {
	service svc.AdminService
}

func NewAdminController(service svc.AdminService) *AdminController {
	return &AdminController{service: service}
}

// AccessLog maneja GET /v1/admin/access-log
func (c *AdminController) AccessLog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("AdminController.AccessLog"))

	q := r.URL.Query()
	filter := core.AccessEventFilter{
		UserID:  core.UserID(q.Get("user_id")),
		Verdict: q.Get("verdict"),
	}
	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			httperrors.WriteError(w, httperrors.ErrInvalidParameter.WithDetail("limit must be a non-negative integer"))
			return
		}
		filter.Limit = n
	}

	resp, err := c.service.AccessLog(ctx, filter)
	if err != nil {
		log.Error("access log query failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrServiceUnavailable)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, resp)
}

// Explain maneja POST /v1/admin/explain
func (c *AdminController) Explain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("AdminController.Explain"))

	var req dto.ExplainRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	if req.ResourceID == "" {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("resource_id is required"))
		return
	}
	if req.UserID == "" && !req.Anonymous {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("user_id is required unless anonymous"))
		return
	}

	requester := mw.GetActor(ctx)
	resp, err := c.service.Explain(ctx, requester, req)
	if err != nil {
		switch {
		case errors.Is(err, portalx.ErrNotAdmin):
			httperrors.WriteError(w, httperrors.ErrForbidden.WithDetail("admin required"))
		case errors.Is(err, core.ErrNotFound):
			httperrors.WriteError(w, httperrors.ErrResourceNotFound)
		default:
			log.Error("explain failed", logger.ResourceID(req.ResourceID), logger.Err(err))
			httperrors.WriteError(w, httperrors.ErrServiceUnavailable)
		}
		return
	}

	helpers.WriteJSON(w, http.StatusOK, resp)
}
