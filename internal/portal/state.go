package portal

import (
	"context"
	"time"

	"github.com/dropDatabas3/portalgate/internal/cache"
	"github.com/dropDatabas3/portalgate/internal/metrics"
	"github.com/dropDatabas3/portalgate/internal/observability/logger"
	"github.com/dropDatabas3/portalgate/internal/store/core"
)

// DefaultActiveTTL es la ventana del portal activo: una hora fija desde la
// selección, sin renovación deslizante.
const DefaultActiveTTL = time.Hour

const activeKeyPrefix = "active_portal:"

// StateMachine maneja el slot por-usuario de portal activo sobre un cache
// con TTL. Estados conceptuales: Unset, Active(p); Stale colapsa a Unset en
// el mismo read que lo detecta, nunca persiste observable.
//
// Dos requests concurrentes del mismo usuario pueden pisarse: last-write-wins
// es aceptable porque el slot modela "contexto de UI actual", no un ledger.
type StateMachine struct {
	cache cache.Client
	ttl   time.Duration
}

func NewStateMachine(c cache.Client, ttl time.Duration) *StateMachine {
	if ttl <= 0 {
		ttl = DefaultActiveTTL
	}
	return &StateMachine{cache: c, ttl: ttl}
}

func (s *StateMachine) key(id core.UserID) string {
	return activeKeyPrefix + string(id)
}

// GetActive devuelve el portal activo del usuario, validando staleness
// inline: si el portal guardado ya no está en userPortals, borra el estado y
// cae a Unset. Si no hay estado y el usuario tiene exactamente un portal, lo
// auto-selecciona y lo devuelve, así los callers no especial-casean usuarios
// de portal único.
func (s *StateMachine) GetActive(ctx context.Context, userID core.UserID, userPortals []core.PortalID) (core.PortalID, bool, error) {
	v, err := s.cache.Get(ctx, s.key(userID))
	switch {
	case err == nil:
		p := core.PortalID(v)
		if containsPortal(userPortals, p) {
			return p, true, nil
		}
		// Stale: el usuario ya no pertenece al portal guardado.
		if derr := s.cache.Delete(ctx, s.key(userID)); derr != nil {
			return "", false, derr
		}
		metrics.StaleEvictions.Inc()
		logger.From(ctx).Debug("stale active portal cleared",
			logger.UserID(string(userID)), logger.PortalID(string(p)))
	case !cache.IsNotFound(err):
		return "", false, err
	}

	if len(userPortals) == 1 {
		p := userPortals[0]
		if err := s.cache.Set(ctx, s.key(userID), string(p), s.ttl); err != nil {
			return "", false, err
		}
		metrics.ActivePortalSelections.WithLabelValues("auto").Inc()
		return p, true, nil
	}
	return "", false, nil
}

// Select commitea la transición a requested si el actor es miembro; falla con
// ErrUnauthorizedPortal si no. La escritura es un único Set atómico con TTL:
// o queda el estado nuevo completo o no queda nada a medias.
func (s *StateMachine) Select(ctx context.Context, userID core.UserID, requested core.PortalID, userPortals []core.PortalID) (core.PortalID, error) {
	if !containsPortal(userPortals, requested) {
		return "", ErrUnauthorizedPortal
	}
	if err := s.cache.Set(ctx, s.key(userID), string(requested), s.ttl); err != nil {
		return "", err
	}
	metrics.ActivePortalSelections.WithLabelValues("explicit").Inc()
	return requested, nil
}

// Activate escribe el portal activo sin chequear userPortals. Lo usa el
// Resolver cuando ya verificó membresía contra la lista de miembros del
// portal al visitarlo directamente.
func (s *StateMachine) Activate(ctx context.Context, userID core.UserID, p core.PortalID) error {
	if err := s.cache.Set(ctx, s.key(userID), string(p), s.ttl); err != nil {
		return err
	}
	metrics.ActivePortalSelections.WithLabelValues("visit").Inc()
	return nil
}

// Peek lee el estado guardado tal cual, sin auto-select ni limpieza de
// staleness. Lo usa el camino de diagnóstico, que no debe mutar nada.
func (s *StateMachine) Peek(ctx context.Context, userID core.UserID) (core.PortalID, bool, error) {
	v, err := s.cache.Get(ctx, s.key(userID))
	if err != nil {
		if cache.IsNotFound(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return core.PortalID(v), true, nil
}

// Clear borra el estado (logout). Borrar un estado inexistente no es error.
func (s *StateMachine) Clear(ctx context.Context, userID core.UserID) error {
	return s.cache.Delete(ctx, s.key(userID))
}

func containsPortal(ps []core.PortalID, p core.PortalID) bool {
	for _, x := range ps {
		if x == p {
			return true
		}
	}
	return false
}

func intersects(a, b []core.PortalID) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
