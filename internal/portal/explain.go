package portal

import (
	"context"

	"github.com/dropDatabas3/portalgate/internal/store/core"
)

// Explanation expone los insumos que vio el Resolver para una decisión.
// Es material de diagnóstico para administradores; el camino de producción
// nunca le muestra razones al actor denegado.
type Explanation struct {
	Subject      core.UserID       `json:"subject"`
	Resource     core.ResourceID   `json:"resource"`
	Kind         core.ResourceKind `json:"kind"`
	UserPortals  []core.PortalID   `json:"user_portals"`
	ActivePortal core.PortalID     `json:"active_portal,omitempty"`
	InActiveMenu bool              `json:"in_active_menu"`
	Verdict      Verdict           `json:"verdict"`
	Reason       string            `json:"reason"`
}

// Explain corre la misma decisión que Resolve pero en seco: sin activar
// portales, sin limpiar staleness y sin emitir auditoría. Sólo para actores
// administradores.
func (r *Resolver) Explain(ctx context.Context, requester core.Actor, subject core.Actor, resourceID core.ResourceID) (*Explanation, error) {
	if !requester.Admin {
		return nil, ErrNotAdmin
	}

	res, err := r.store.GetResource(ctx, resourceID)
	if err != nil {
		return nil, err
	}

	var userPortals []core.PortalID
	var active core.PortalID
	if !subject.Anonymous {
		userPortals, err = r.store.GetUserPortals(ctx, subject.ID)
		if err != nil {
			return nil, err
		}
		if p, ok, err := r.state.Peek(ctx, subject.ID); err != nil {
			return nil, err
		} else if ok {
			active = p
		}
	}

	inMenu, err := r.inActiveMenu(ctx, res.ID, active)
	if err != nil {
		return nil, err
	}

	d, err := r.decide(ctx, subject, res, userPortals, active, false)
	if err != nil {
		return nil, err
	}

	return &Explanation{
		Subject:      subject.ID,
		Resource:     res.ID,
		Kind:         res.Kind,
		UserPortals:  userPortals,
		ActivePortal: active,
		InActiveMenu: inMenu,
		Verdict:      d.Verdict,
		Reason:       d.Reason,
	}, nil
}
