// Package memstore implementa core.ContentStore en memoria.
// Pensado para desarrollo y tests; el seeding se hace con los helpers Add*.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dropDatabas3/portalgate/internal/store/core"
	"github.com/google/uuid"
)

type Store struct {
	mu        sync.RWMutex
	portals   map[core.PortalID]*core.Portal
	members   map[core.PortalID]map[core.UserID]struct{}
	resources map[core.ResourceID]*core.Resource
	menus     map[core.MenuID][]core.MenuItem
	events    []core.AccessEvent
}

func New() *Store {
	return &Store{
		portals:   make(map[core.PortalID]*core.Portal),
		members:   make(map[core.PortalID]map[core.UserID]struct{}),
		resources: make(map[core.ResourceID]*core.Resource),
		menus:     make(map[core.MenuID][]core.MenuItem),
	}
}

func (s *Store) Ping(ctx context.Context) error { return nil }

// ─── Seeding ───

func (s *Store) AddPortal(p core.Portal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	cp := p
	s.portals[p.ID] = &cp
	if _, ok := s.members[p.ID]; !ok {
		s.members[p.ID] = make(map[core.UserID]struct{})
	}
	// El portal también es un recurso navegable del mismo id.
	s.resources[core.ResourceID(p.ID)] = &core.Resource{
		ID:    core.ResourceID(p.ID),
		Kind:  core.KindPortal,
		Title: p.Title,
		Path:  p.Path,
	}
}

func (s *Store) AddMember(portal core.PortalID, user core.UserID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[portal]; !ok {
		s.members[portal] = make(map[core.UserID]struct{})
	}
	s.members[portal][user] = struct{}{}
}

func (s *Store) RemoveMember(portal core.PortalID, user core.UserID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.members[portal]; ok {
		delete(m, user)
	}
}

func (s *Store) AddResource(r core.Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := r
	s.resources[r.ID] = &cp
}

func (s *Store) SetMenuItems(id core.MenuID, items []core.MenuItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.MenuItem, len(items))
	copy(out, items)
	for i := range out {
		out[i].MenuID = id
		out[i].Position = i
	}
	s.menus[id] = out
}

// ─── Lecturas ───

func (s *Store) GetPortal(ctx context.Context, id core.PortalID) (*core.Portal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.portals[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *Store) GetPortalMembers(ctx context.Context, id core.PortalID) ([]core.UserID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.portals[id]; !ok {
		return nil, core.ErrNotFound
	}
	var out []core.UserID
	for u := range s.members[id] {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (s *Store) GetUserPortals(ctx context.Context, id core.UserID) ([]core.PortalID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.PortalID
	for pid, users := range s.members {
		if _, ok := users[id]; ok {
			out = append(out, pid)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := s.portals[out[i]], s.portals[out[j]]
		if a != nil && b != nil && !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return out[i] < out[j]
	})
	return out, nil
}

func (s *Store) GetResource(ctx context.Context, id core.ResourceID) (*core.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.resources[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *r
	cp.RestrictedTo = append([]core.PortalID(nil), r.RestrictedTo...)
	return &cp, nil
}

func (s *Store) GetResourceRestriction(ctx context.Context, id core.ResourceID) ([]core.PortalID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.resources[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return append([]core.PortalID(nil), r.RestrictedTo...), nil
}

func (s *Store) ListResources(ctx context.Context) ([]core.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Resource, 0, len(s.resources))
	for _, r := range s.resources {
		cp := *r
		cp.RestrictedTo = append([]core.PortalID(nil), r.RestrictedTo...)
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetPortalMenu(ctx context.Context, id core.PortalID) (core.MenuID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.portals[id]
	if !ok {
		return "", core.ErrNotFound
	}
	if p.MenuID == nil || *p.MenuID == "" {
		return "", core.ErrNotFound
	}
	return *p.MenuID, nil
}

func (s *Store) GetMenuItems(ctx context.Context, id core.MenuID) ([]core.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items, ok := s.menus[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return append([]core.MenuItem(nil), items...), nil
}

// ─── Auditoría ───

func (s *Store) InsertAccessEvent(ctx context.Context, ev *core.AccessEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now()
	}
	s.events = append(s.events, *ev)
	return nil
}

func (s *Store) ListAccessEvents(ctx context.Context, f core.AccessEventFilter) ([]core.AccessEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	limit := f.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var out []core.AccessEvent
	for i := len(s.events) - 1; i >= 0 && len(out) < limit; i-- {
		ev := s.events[i]
		if f.UserID != "" && ev.UserID != f.UserID {
			continue
		}
		if f.Verdict != "" && ev.Verdict != f.Verdict {
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}
