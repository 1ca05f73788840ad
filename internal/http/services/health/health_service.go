// Package health contiene el service para health checks.
package health

import (
	"context"
	"fmt"
	"time"

	dto "github.com/dropDatabas3/portalgate/internal/http/dto/health"
	"github.com/dropDatabas3/portalgate/internal/observability/logger"
)

// HealthService define las operaciones de health check.
type HealthService interface {
	Check(ctx context.Context) dto.HealthResponse
}

// Deps contiene las dependencias inyectables para el health service.
type Deps struct {
	StoreCheck func(ctx context.Context) error
	CacheCheck func(ctx context.Context) error
}

type healthService struct {
	deps Deps
}

func NewHealthService(deps Deps) HealthService {
	return &healthService{deps: deps}
}

func (s *healthService) Check(ctx context.Context) dto.HealthResponse {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("health"),
		logger.Op("Check"),
	)

	response := dto.HealthResponse{
		Components: make(map[string]dto.HealthStatus),
		Timestamp:  time.Now().UTC(),
	}

	hasCriticalErrors := false
	hasErrors := false

	// 1) Store de contenido (crítico: sin él no hay decisiones)
	if s.deps.StoreCheck != nil {
		if err := s.deps.StoreCheck(ctx); err != nil {
			response.Components["store"] = dto.HealthStatus{
				Status:  "error",
				Message: fmt.Sprintf("unavailable: %v", err),
			}
			hasCriticalErrors = true
			log.Error("store unavailable", logger.Err(err))
		} else {
			response.Components["store"] = dto.HealthStatus{Status: "ok"}
		}
	} else {
		response.Components["store"] = dto.HealthStatus{
			Status:  "error",
			Message: "store not initialized",
		}
		hasCriticalErrors = true
	}

	// 2) Cache de estado (no crítico: se degrada a auto-select por request)
	if s.deps.CacheCheck != nil {
		if err := s.deps.CacheCheck(ctx); err != nil {
			response.Components["cache"] = dto.HealthStatus{
				Status:  "error",
				Message: fmt.Sprintf("unavailable: %v", err),
			}
			hasErrors = true
			log.Error("cache unavailable", logger.Err(err))
		} else {
			response.Components["cache"] = dto.HealthStatus{Status: "ok"}
		}
	} else {
		response.Components["cache"] = dto.HealthStatus{
			Status:  "disabled",
			Message: "memory cache only",
		}
	}

	if hasCriticalErrors {
		response.Status = "unavailable"
	} else if hasErrors {
		response.Status = "degraded"
	} else {
		response.Status = "ready"
	}

	return response
}
