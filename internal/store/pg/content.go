package pg

import (
	"context"
	"errors"

	"github.com/dropDatabas3/portalgate/internal/store/core"
	"github.com/jackc/pgx/v5"
)

func (s *Store) GetPortal(ctx context.Context, id core.PortalID) (*core.Portal, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, title, slug, path, menu_id, created_at
		FROM portals WHERE id = $1
	`, string(id))

	var p core.Portal
	var menuID *string
	if err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Path, &menuID, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, err
	}
	if menuID != nil {
		m := core.MenuID(*menuID)
		p.MenuID = &m
	}
	return &p, nil
}

func (s *Store) GetPortalMembers(ctx context.Context, id core.PortalID) ([]core.UserID, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT user_id FROM portal_members WHERE portal_id = $1
	`, string(id))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.UserID
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		out = append(out, core.UserID(u))
	}
	return out, rows.Err()
}

func (s *Store) GetUserPortals(ctx context.Context, id core.UserID) ([]core.PortalID, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT pm.portal_id
		FROM portal_members pm
		JOIN portals p ON p.id = pm.portal_id
		WHERE pm.user_id = $1
		ORDER BY p.created_at, p.id
	`, string(id))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.PortalID
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		out = append(out, core.PortalID(p))
	}
	return out, rows.Err()
}

func (s *Store) GetResource(ctx context.Context, id core.ResourceID) (*core.Resource, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, kind, title, path, system_page
		FROM resources WHERE id = $1
	`, string(id))

	var r core.Resource
	if err := row.Scan(&r.ID, &r.Kind, &r.Title, &r.Path, &r.System); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, err
	}

	restricted, err := s.GetResourceRestriction(ctx, id)
	if err != nil {
		return nil, err
	}
	r.RestrictedTo = restricted
	return &r, nil
}

func (s *Store) GetResourceRestriction(ctx context.Context, id core.ResourceID) ([]core.PortalID, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT portal_id FROM resource_portals WHERE resource_id = $1
	`, string(id))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.PortalID
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		out = append(out, core.PortalID(p))
	}
	return out, rows.Err()
}

func (s *Store) ListResources(ctx context.Context) ([]core.Resource, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT r.id, r.kind, r.title, r.path, r.system_page,
		       COALESCE(array_agg(rp.portal_id) FILTER (WHERE rp.portal_id IS NOT NULL), '{}')
		FROM resources r
		LEFT JOIN resource_portals rp ON rp.resource_id = r.id
		GROUP BY r.id
		ORDER BY r.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.Resource
	for rows.Next() {
		var r core.Resource
		var restricted []string
		if err := rows.Scan(&r.ID, &r.Kind, &r.Title, &r.Path, &r.System, &restricted); err != nil {
			return nil, err
		}
		for _, p := range restricted {
			r.RestrictedTo = append(r.RestrictedTo, core.PortalID(p))
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) GetPortalMenu(ctx context.Context, id core.PortalID) (core.MenuID, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT menu_id FROM portals WHERE id = $1
	`, string(id))

	var menuID *string
	if err := row.Scan(&menuID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", core.ErrNotFound
		}
		return "", err
	}
	if menuID == nil || *menuID == "" {
		return "", core.ErrNotFound
	}
	return core.MenuID(*menuID), nil
}

func (s *Store) GetMenuItems(ctx context.Context, id core.MenuID) ([]core.MenuItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT menu_id, position, item_type, label, target_id, url
		FROM menu_items WHERE menu_id = $1
		ORDER BY position
	`, string(id))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.MenuItem
	for rows.Next() {
		var it core.MenuItem
		if err := rows.Scan(&it.MenuID, &it.Position, &it.Type, &it.Label, &it.TargetID, &it.URL); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
