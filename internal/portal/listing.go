package portal

import (
	"context"

	"github.com/dropDatabas3/portalgate/internal/store/core"
)

// ListingFilter poda listados públicos (búsqueda, sitemaps, archivos) para
// que no filtren la existencia de contenido restringido.
type ListingFilter struct {
	store core.ContentStore
}

func NewListingFilter(store core.ContentStore) *ListingFilter {
	return &ListingFilter{store: store}
}

// VisibleResources devuelve los recursos que el actor puede ver en
// superficies de listado. Las páginas de portal nunca aparecen en listados,
// ni siquiera para sus miembros; se llega a ellas navegando, no buscando.
func (f *ListingFilter) VisibleResources(ctx context.Context, actor core.Actor) ([]core.Resource, error) {
	all, err := f.store.ListResources(ctx)
	if err != nil {
		return nil, err
	}

	var memberships []core.PortalID
	if !actor.Anonymous && !actor.Admin {
		memberships, err = f.store.GetUserPortals(ctx, actor.ID)
		if err != nil {
			return nil, err
		}
	}

	out := make([]core.Resource, 0, len(all))
	for _, res := range all {
		if res.Kind == core.KindPortal {
			continue
		}
		if len(res.RestrictedTo) == 0 {
			out = append(out, res)
			continue
		}
		if actor.Admin {
			out = append(out, res)
			continue
		}
		if actor.Anonymous {
			continue
		}
		if intersects(res.RestrictedTo, memberships) {
			out = append(out, res)
		}
	}
	return out, nil
}
