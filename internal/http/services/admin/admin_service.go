// Package admin contiene el service de las operaciones administrativas:
// consulta del registro de accesos y evaluación en seco de la política.
package admin

import (
	"context"

	dto "github.com/dropDatabas3/portalgate/internal/http/dto/admin"
	"github.com/dropDatabas3/portalgate/internal/portal"
	"github.com/dropDatabas3/portalgate/internal/store/core"
)

// AdminService expone las operaciones administrativas.
type AdminService interface {
	AccessLog(ctx context.Context, filter core.AccessEventFilter) (dto.AccessLogResponse, error)
	Explain(ctx context.Context, requester core.Actor, req dto.ExplainRequest) (*portal.Explanation, error)
}

// Deps contiene las dependencias inyectables del service.
type Deps struct {
	Store    core.ContentStore
	Resolver *portal.Resolver
}

type adminService struct {
	deps Deps
}

func NewAdminService(deps Deps) AdminService {
	return &adminService{deps: deps}
}

func (s *adminService) AccessLog(ctx context.Context, filter core.AccessEventFilter) (dto.AccessLogResponse, error) {
	events, err := s.deps.Store.ListAccessEvents(ctx, filter)
	if err != nil {
		return dto.AccessLogResponse{}, err
	}
	out := dto.AccessLogResponse{Events: make([]dto.AccessLogEntry, 0, len(events))}
	for _, ev := range events {
		out.Events = append(out.Events, dto.AccessLogEntry{
			ID:         ev.ID,
			UserID:     string(ev.UserID),
			ResourceID: string(ev.ResourceID),
			Verdict:    ev.Verdict,
			Reason:     ev.Reason,
			OccurredAt: ev.OccurredAt,
		})
	}
	return out, nil
}

func (s *adminService) Explain(ctx context.Context, requester core.Actor, req dto.ExplainRequest) (*portal.Explanation, error) {
	subject := core.Actor{ID: core.UserID(req.UserID), Anonymous: req.Anonymous}
	return s.deps.Resolver.Explain(ctx, requester, subject, core.ResourceID(req.ResourceID))
}
