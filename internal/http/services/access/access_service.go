// Package access contiene el service que expone la resolución de acceso.
package access

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	dto "github.com/dropDatabas3/portalgate/internal/http/dto/access"
	"github.com/dropDatabas3/portalgate/internal/metrics"
	"github.com/dropDatabas3/portalgate/internal/observability/logger"
	"github.com/dropDatabas3/portalgate/internal/portal"
	"github.com/dropDatabas3/portalgate/internal/store/core"
)

// AccessService resuelve decisiones de acceso y listados visibles.
type AccessService interface {
	Resolve(ctx context.Context, actor core.Actor, resourceID core.ResourceID) (dto.ResolveResponse, error)
	Visible(ctx context.Context, actor core.Actor) (dto.VisibleResponse, error)
}

// Deps contiene las dependencias inyectables del service.
type Deps struct {
	Store    core.ContentStore
	Resolver *portal.Resolver
	State    *portal.StateMachine
	Listing  *portal.ListingFilter
	Message  string // mensaje opcional para denegaciones con redirect configurado
}

type accessService struct {
	deps Deps

	// Colapsa lecturas concurrentes de membresías del mismo usuario, que es
	// la consulta caliente cuando un browser dispara página + assets juntos.
	memberships singleflight.Group
}

func NewAccessService(deps Deps) AccessService {
	return &accessService{deps: deps}
}

const componentAccess = "access"

func (s *accessService) Resolve(ctx context.Context, actor core.Actor, resourceID core.ResourceID) (dto.ResolveResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentAccess),
		logger.Op("Resolve"),
	)
	start := time.Now()

	res, err := s.deps.Store.GetResource(ctx, resourceID)
	if err != nil {
		return dto.ResolveResponse{}, err
	}

	userPortals, err := s.userPortals(ctx, actor)
	if err != nil {
		return dto.ResolveResponse{}, err
	}

	active, _, err := s.deps.State.GetActive(ctx, actor.ID, userPortals)
	if err != nil {
		return dto.ResolveResponse{}, err
	}

	d, err := s.deps.Resolver.Resolve(ctx, actor, res, userPortals, active)
	if err != nil {
		return dto.ResolveResponse{}, err
	}

	metrics.AccessDecisions.WithLabelValues(string(d.Verdict), string(res.Kind)).Inc()
	metrics.ResolveLatency.Observe(float64(time.Since(start).Microseconds()) / 1000.0)

	log.Debug("access resolved",
		logger.ResourceID(string(resourceID)),
		logger.Verdict(string(d.Verdict)),
		logger.Reason(d.Reason),
	)

	out := dto.ResolveResponse{
		Verdict:         string(d.Verdict),
		RedirectURL:     d.RedirectURL,
		ActivatedPortal: string(d.ActivatedPortal),
	}
	if d.Verdict == portal.DenyRedirectConfigured && s.deps.Message != "" {
		out.Message = s.deps.Message
	}
	return out, nil
}

func (s *accessService) Visible(ctx context.Context, actor core.Actor) (dto.VisibleResponse, error) {
	resources, err := s.deps.Listing.VisibleResources(ctx, actor)
	if err != nil {
		return dto.VisibleResponse{}, err
	}
	out := dto.VisibleResponse{Resources: make([]dto.ResourceSummary, 0, len(resources))}
	for _, r := range resources {
		out.Resources = append(out.Resources, dto.ResourceSummary{
			ID:    string(r.ID),
			Kind:  string(r.Kind),
			Title: r.Title,
			Path:  r.Path,
		})
	}
	return out, nil
}

func (s *accessService) userPortals(ctx context.Context, actor core.Actor) ([]core.PortalID, error) {
	if actor.Anonymous {
		return nil, nil
	}
	v, err, _ := s.memberships.Do(string(actor.ID), func() (any, error) {
		return s.deps.Store.GetUserPortals(ctx, actor.ID)
	})
	if err != nil {
		return nil, err
	}
	return v.([]core.PortalID), nil
}
