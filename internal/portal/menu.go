package portal

import (
	"context"
	"errors"

	"github.com/dropDatabas3/portalgate/internal/store/core"
)

// MenuFilter resuelve qué menú renderizar para el portal activo y poda las
// entradas que el actor no puede alcanzar.
type MenuFilter struct {
	store       core.ContentStore
	defaultMenu core.MenuID
}

func NewMenuFilter(store core.ContentStore, defaultMenu core.MenuID) *MenuFilter {
	return &MenuFilter{store: store, defaultMenu: defaultMenu}
}

// ResolveMenu devuelve el menú asignado al portal activo, o el menú default
// configurado si el portal no tiene, o nada si no existe ninguno (el caller
// no renderiza navegación, no una vacía rota).
func (f *MenuFilter) ResolveMenu(ctx context.Context, activePortal core.PortalID) (core.MenuID, bool, error) {
	if activePortal != "" {
		id, err := f.store.GetPortalMenu(ctx, activePortal)
		if err == nil {
			return id, true, nil
		}
		if !errors.Is(err, core.ErrNotFound) {
			return "", false, err
		}
	}
	if f.defaultMenu != "" {
		return f.defaultMenu, true, nil
	}
	return "", false, nil
}

// FilterItems devuelve las entradas del menú que el actor puede ver,
// preservando el orden original.
//
// Reglas por entrada: restricción vacía pasa siempre; los administradores ven
// todo (para poder auditar/editar); anónimos no ven entradas restringidas;
// el resto pasa sólo con intersección entre sus membresías y la restricción
// del recurso destino. Links custom sin recurso destino pasan siempre.
func (f *MenuFilter) FilterItems(ctx context.Context, menuID core.MenuID, actor core.Actor, userPortals []core.PortalID) ([]core.MenuItem, error) {
	items, err := f.store.GetMenuItems(ctx, menuID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	out := make([]core.MenuItem, 0, len(items))
	for _, it := range items {
		if it.Type != core.MenuItemPage || it.TargetID == "" {
			out = append(out, it)
			continue
		}

		restricted, err := f.store.GetResourceRestriction(ctx, it.TargetID)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				// Entrada que apunta a un recurso borrado: se omite.
				continue
			}
			return nil, err
		}
		if len(restricted) == 0 {
			out = append(out, it)
			continue
		}
		if actor.Admin {
			out = append(out, it)
			continue
		}
		if actor.Anonymous {
			continue
		}
		if intersects(restricted, userPortals) {
			out = append(out, it)
		}
	}
	return out, nil
}
