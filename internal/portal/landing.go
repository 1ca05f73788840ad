package portal

import (
	"context"

	"github.com/dropDatabas3/portalgate/internal/store/core"
)

// Destination clasifica a dónde mandar a un usuario recién autenticado.
type Destination string

const (
	DestinationAdmin     Destination = "admin"
	DestinationHome      Destination = "home"
	DestinationPortal    Destination = "portal"
	DestinationSelection Destination = "selection"
)

// Landing es el resultado de resolver el destino post-login.
type Landing struct {
	Destination Destination   `json:"destination"`
	Portal      core.PortalID `json:"portal,omitempty"`
	Path        string        `json:"path,omitempty"`
}

// LandingResolver decide el destino post-login según las membresías del
// usuario: admins van al panel, cero portales al home, uno solo directo a su
// portal (activándolo de paso), y varios a la pantalla de selección.
type LandingResolver struct {
	store core.ContentStore
	state *StateMachine

	adminURL     string
	homeURL      string
	selectionURL string
}

func NewLandingResolver(store core.ContentStore, state *StateMachine, adminURL, homeURL, selectionURL string) *LandingResolver {
	return &LandingResolver{
		store:        store,
		state:        state,
		adminURL:     adminURL,
		homeURL:      homeURL,
		selectionURL: selectionURL,
	}
}

func (r *LandingResolver) LandingFor(ctx context.Context, actor core.Actor) (Landing, error) {
	if actor.Admin {
		return Landing{Destination: DestinationAdmin, Path: r.adminURL}, nil
	}
	if actor.Anonymous {
		return Landing{Destination: DestinationHome, Path: r.homeURL}, nil
	}

	memberships, err := r.store.GetUserPortals(ctx, actor.ID)
	if err != nil {
		return Landing{}, err
	}
	switch len(memberships) {
	case 0:
		return Landing{Destination: DestinationHome, Path: r.homeURL}, nil
	case 1:
		pid := memberships[0]
		p, err := r.store.GetPortal(ctx, pid)
		if err != nil {
			return Landing{}, err
		}
		// Si la activación falla el landing sigue siendo válido; el estado
		// se reconstruye por auto-select en la próxima lectura.
		_ = r.state.Activate(ctx, actor.ID, pid)
		return Landing{Destination: DestinationPortal, Portal: pid, Path: p.Path}, nil
	default:
		return Landing{Destination: DestinationSelection, Path: r.selectionURL}, nil
	}
}
