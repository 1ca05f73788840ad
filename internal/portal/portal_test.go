package portal

import (
	"sync"
	"testing"
	"time"

	"github.com/dropDatabas3/portalgate/internal/cache"
	"github.com/dropDatabas3/portalgate/internal/store/core"
	"github.com/dropDatabas3/portalgate/internal/store/memstore"
)

// Escenario compartido por los tests del paquete:
//
//	acme    portal con menú m-acme (docs restringidos, una página pública)
//	globex  portal con menú m-globex
//	orphan  portal sin menú ni miembros
//
//	alice   miembro de acme
//	bob     miembro de acme y globex
//	carol   usuaria sin portales
//	dave    miembro de globex
//	root    administrador
func seedStore() *memstore.Store {
	st := memstore.New()

	acmeMenu := core.MenuID("m-acme")
	globexMenu := core.MenuID("m-globex")

	st.AddPortal(core.Portal{
		ID: "acme", Title: "Acme Corp", Slug: "acme", Path: "/portal/acme",
		MenuID: &acmeMenu, CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	st.AddPortal(core.Portal{
		ID: "globex", Title: "Globex", Slug: "globex", Path: "/portal/globex",
		MenuID: &globexMenu, CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	})
	st.AddPortal(core.Portal{
		ID: "orphan", Title: "Orphan", Slug: "orphan", Path: "/portal/orphan",
		CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})

	st.AddMember("acme", "alice")
	st.AddMember("acme", "bob")
	st.AddMember("globex", "bob")
	st.AddMember("globex", "dave")

	st.AddResource(core.Resource{
		ID: "r-acme-docs", Kind: core.KindPage, Title: "Acme Docs",
		Path: "/portal/acme/docs", RestrictedTo: []core.PortalID{"acme"},
	})
	st.AddResource(core.Resource{
		ID: "r-shared", Kind: core.KindPage, Title: "Shared Notes",
		Path: "/shared", RestrictedTo: []core.PortalID{"acme", "globex"},
	})
	st.AddResource(core.Resource{
		ID: "r-public", Kind: core.KindPage, Title: "Pública", Path: "/p/publica",
	})
	st.AddResource(core.Resource{
		ID: "r-open", Kind: core.KindPage, Title: "Suelta", Path: "/p/suelta",
	})
	st.AddResource(core.Resource{
		ID: "r-sys", Kind: core.KindPage, Title: "Elegí tu portal", Path: "/portals",
		System: true,
	})
	st.AddResource(core.Resource{
		ID: "r-generic", Kind: core.KindGeneric, Title: "Adjunto", Path: "/media/adj",
	})
	st.AddResource(core.Resource{
		ID: "home", Kind: core.KindHome, Title: "Home", Path: "/",
	})

	st.SetMenuItems("m-acme", []core.MenuItem{
		{Type: core.MenuItemPage, Label: "Pública", TargetID: "r-public"},
		{Type: core.MenuItemPage, Label: "Docs", TargetID: "r-acme-docs"},
		{Type: core.MenuItemCustom, Label: "Soporte", URL: "https://support.example.com"},
	})
	st.SetMenuItems("m-globex", []core.MenuItem{
		{Type: core.MenuItemPage, Label: "Shared", TargetID: "r-shared"},
	})

	return st
}

func newMemCache(t *testing.T) cache.Client {
	t.Helper()
	c, err := cache.New(cache.Config{Driver: "memory"})
	if err != nil {
		t.Fatalf("cache: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

// recorderStub captura eventos de auditoría en memoria.
type recorderStub struct {
	mu     sync.Mutex
	events []core.AccessEvent
}

func (r *recorderStub) Record(ev core.AccessEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorderStub) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func (r *recorderStub) last() core.AccessEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return core.AccessEvent{}
	}
	return r.events[len(r.events)-1]
}

type testEnv struct {
	store    *memstore.Store
	state    *StateMachine
	resolver *Resolver
	audit    *recorderStub
}

func newTestEnv(t *testing.T, settings Settings) *testEnv {
	t.Helper()
	st := seedStore()
	state := NewStateMachine(newMemCache(t), 0)
	rec := &recorderStub{}
	return &testEnv{
		store:    st,
		state:    state,
		resolver: NewResolver(st, state, rec, settings),
		audit:    rec,
	}
}

var (
	anon  = core.Actor{Anonymous: true}
	alice = core.Actor{ID: "alice"}
	bob   = core.Actor{ID: "bob"}
	carol = core.Actor{ID: "carol"}
	dave  = core.Actor{ID: "dave"}
	root  = core.Actor{ID: "root", Admin: true}
)
