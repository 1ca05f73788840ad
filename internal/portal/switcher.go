package portal

import (
	"context"
	"errors"

	"github.com/dropDatabas3/portalgate/internal/store/core"
)

// Option es una entrada del selector de portales.
type Option struct {
	ID     core.PortalID `json:"id"`
	Title  string        `json:"title"`
	Active bool          `json:"active"`
}

// Switcher arma el selector de portales para usuarios con más de una
// membresía y ejecuta el cambio explícito de portal activo.
type Switcher struct {
	store core.ContentStore
	state *StateMachine
}

func NewSwitcher(store core.ContentStore, state *StateMachine) *Switcher {
	return &Switcher{store: store, state: state}
}

// Options devuelve las opciones del selector, o nil si el usuario tiene menos
// de dos membresías (con una sola no hay nada que elegir, el selector no se
// renderiza). La opción marcada Active es la inferida por Current.
func (s *Switcher) Options(ctx context.Context, actor core.Actor, resource *core.Resource) ([]Option, error) {
	if actor.Anonymous {
		return nil, nil
	}
	memberships, err := s.store.GetUserPortals(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if len(memberships) < 2 {
		return nil, nil
	}

	current, err := s.Current(ctx, actor, resource, memberships)
	if err != nil {
		return nil, err
	}

	out := make([]Option, 0, len(memberships))
	for _, pid := range memberships {
		p, err := s.store.GetPortal(ctx, pid)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, Option{ID: p.ID, Title: p.Title, Active: p.ID == current})
	}
	return out, nil
}

// Current infiere el portal "actual" para el contexto dado, en este orden:
// el propio portal si el recurso es un portal del que el actor es miembro,
// el portal de la restricción si la página está restringida, el estado
// guardado, y como último recurso la primera membresía.
func (s *Switcher) Current(ctx context.Context, actor core.Actor, resource *core.Resource, memberships []core.PortalID) (core.PortalID, error) {
	if resource != nil {
		if resource.Kind == core.KindPortal {
			pid := core.PortalID(resource.ID)
			if containsPortal(memberships, pid) {
				return pid, nil
			}
		}
		if len(resource.RestrictedTo) > 0 {
			for _, pid := range resource.RestrictedTo {
				if containsPortal(memberships, pid) {
					return pid, nil
				}
			}
		}
	}

	stored, ok, err := s.state.Peek(ctx, actor.ID)
	if err != nil {
		return "", err
	}
	if ok && containsPortal(memberships, stored) {
		return stored, nil
	}
	if len(memberships) > 0 {
		return memberships[0], nil
	}
	return "", nil
}

// Switch cambia el portal activo del actor. Delega en la máquina de estado,
// que valida membresía y devuelve ErrUnauthorizedPortal si no corresponde.
func (s *Switcher) Switch(ctx context.Context, actor core.Actor, target core.PortalID) error {
	if actor.Anonymous {
		return ErrUnauthorizedPortal
	}
	memberships, err := s.store.GetUserPortals(ctx, actor.ID)
	if err != nil {
		return err
	}
	_, err = s.state.Select(ctx, actor.ID, target, memberships)
	return err
}
