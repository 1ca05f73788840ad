// Package session contiene el service de destino post-login.
package session

import (
	"context"

	dto "github.com/dropDatabas3/portalgate/internal/http/dto/session"
	"github.com/dropDatabas3/portalgate/internal/observability/logger"
	"github.com/dropDatabas3/portalgate/internal/portal"
	"github.com/dropDatabas3/portalgate/internal/store/core"
)

// SessionService resuelve el destino inicial de una sesión.
type SessionService interface {
	Landing(ctx context.Context, actor core.Actor) (dto.LandingResponse, error)
}

type sessionService struct {
	landing *portal.LandingResolver
}

func NewSessionService(landing *portal.LandingResolver) SessionService {
	return &sessionService{landing: landing}
}

func (s *sessionService) Landing(ctx context.Context, actor core.Actor) (dto.LandingResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("session"),
		logger.Op("Landing"),
	)
	l, err := s.landing.LandingFor(ctx, actor)
	if err != nil {
		return dto.LandingResponse{}, err
	}
	log.Debug("landing resolved",
		logger.Any("destination", l.Destination),
		logger.PortalID(string(l.Portal)),
	)
	return dto.LandingResponse{
		Destination: string(l.Destination),
		Portal:      string(l.Portal),
		Path:        l.Path,
	}, nil
}
