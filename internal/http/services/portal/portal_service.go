// Package portal contiene el service del portal activo, el selector y el menú.
package portal

import (
	"context"

	dto "github.com/dropDatabas3/portalgate/internal/http/dto/portal"
	"github.com/dropDatabas3/portalgate/internal/observability/logger"
	"github.com/dropDatabas3/portalgate/internal/portal"
	"github.com/dropDatabas3/portalgate/internal/store/core"
)

// PortalService expone las operaciones de portal activo del actor.
type PortalService interface {
	Select(ctx context.Context, actor core.Actor, target core.PortalID) error
	Active(ctx context.Context, actor core.Actor) (dto.ActiveResponse, error)
	Options(ctx context.Context, actor core.Actor, resourceID core.ResourceID) (dto.OptionsResponse, error)
	Menu(ctx context.Context, actor core.Actor) (dto.MenuResponse, error)
}

// Deps contiene las dependencias inyectables del service.
type Deps struct {
	Store    core.ContentStore
	State    *portal.StateMachine
	Switcher *portal.Switcher
	Menu     *portal.MenuFilter
}

type portalService struct {
	deps Deps
}

func NewPortalService(deps Deps) PortalService {
	return &portalService{deps: deps}
}

const componentPortal = "portal"

func (s *portalService) Select(ctx context.Context, actor core.Actor, target core.PortalID) error {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentPortal),
		logger.Op("Select"),
	)
	if err := s.deps.Switcher.Switch(ctx, actor, target); err != nil {
		return err
	}
	log.Info("portal selected", logger.PortalID(string(target)))
	return nil
}

func (s *portalService) Active(ctx context.Context, actor core.Actor) (dto.ActiveResponse, error) {
	if actor.Anonymous {
		return dto.ActiveResponse{}, nil
	}
	memberships, err := s.deps.Store.GetUserPortals(ctx, actor.ID)
	if err != nil {
		return dto.ActiveResponse{}, err
	}
	active, found, err := s.deps.State.GetActive(ctx, actor.ID, memberships)
	if err != nil {
		return dto.ActiveResponse{}, err
	}
	return dto.ActiveResponse{Portal: string(active), Found: found}, nil
}

func (s *portalService) Options(ctx context.Context, actor core.Actor, resourceID core.ResourceID) (dto.OptionsResponse, error) {
	var res *core.Resource
	if resourceID != "" {
		r, err := s.deps.Store.GetResource(ctx, resourceID)
		if err == nil {
			res = r
		}
		// Un recurso inexistente no invalida el selector, sólo pierde contexto.
	}
	opts, err := s.deps.Switcher.Options(ctx, actor, res)
	if err != nil {
		return dto.OptionsResponse{}, err
	}
	out := dto.OptionsResponse{Options: make([]dto.Option, 0, len(opts))}
	for _, o := range opts {
		out.Options = append(out.Options, dto.Option{ID: string(o.ID), Title: o.Title, Active: o.Active})
	}
	return out, nil
}

func (s *portalService) Menu(ctx context.Context, actor core.Actor) (dto.MenuResponse, error) {
	var memberships []core.PortalID
	var active core.PortalID
	if !actor.Anonymous {
		var err error
		memberships, err = s.deps.Store.GetUserPortals(ctx, actor.ID)
		if err != nil {
			return dto.MenuResponse{}, err
		}
		active, _, err = s.deps.State.GetActive(ctx, actor.ID, memberships)
		if err != nil {
			return dto.MenuResponse{}, err
		}
	}

	menuID, found, err := s.deps.Menu.ResolveMenu(ctx, active)
	if err != nil {
		return dto.MenuResponse{}, err
	}
	if !found {
		return dto.MenuResponse{Items: []dto.MenuItem{}}, nil
	}

	items, err := s.deps.Menu.FilterItems(ctx, menuID, actor, memberships)
	if err != nil {
		return dto.MenuResponse{}, err
	}
	out := dto.MenuResponse{MenuID: string(menuID), Found: true, Items: make([]dto.MenuItem, 0, len(items))}
	for _, it := range items {
		out.Items = append(out.Items, dto.MenuItem{
			Position: it.Position,
			Type:     string(it.Type),
			Label:    it.Label,
			TargetID: string(it.TargetID),
			URL:      it.URL,
		})
	}
	return out, nil
}
