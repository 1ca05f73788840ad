package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dropDatabas3/portalgate/internal/store/core"
)

func TestGetUserPortalsOrderedByCreation(t *testing.T) {
	st := New()
	st.AddPortal(core.Portal{ID: "zeta", Title: "Zeta", CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)})
	st.AddPortal(core.Portal{ID: "alfa", Title: "Alfa", CreatedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)})
	st.AddMember("alfa", "u")
	st.AddMember("zeta", "u")

	got, err := st.GetUserPortals(context.Background(), "u")
	if err != nil {
		t.Fatal(err)
	}
	// Orden por fecha de creación, no alfabético.
	if len(got) != 2 || got[0] != "zeta" || got[1] != "alfa" {
		t.Fatalf("got %v", got)
	}
}

func TestRemoveMember(t *testing.T) {
	st := New()
	st.AddPortal(core.Portal{ID: "p", Title: "P"})
	st.AddMember("p", "u")
	st.RemoveMember("p", "u")

	got, err := st.GetUserPortals(context.Background(), "u")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("got %v", got)
	}
}

func TestLookupsReturnNotFound(t *testing.T) {
	st := New()
	ctx := context.Background()

	if _, err := st.GetPortal(ctx, "nope"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("portal: %v", err)
	}
	if _, err := st.GetResource(ctx, "nope"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("resource: %v", err)
	}
	if _, err := st.GetMenuItems(ctx, "nope"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("menu: %v", err)
	}

	st.AddPortal(core.Portal{ID: "p", Title: "P"})
	if _, err := st.GetPortalMenu(ctx, "p"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("portal sin menú: %v", err)
	}
}

func TestSetMenuItemsAssignsPositions(t *testing.T) {
	st := New()
	st.SetMenuItems("m", []core.MenuItem{
		{Type: core.MenuItemPage, Label: "a", TargetID: "ra"},
		{Type: core.MenuItemCustom, Label: "b", URL: "https://x"},
	})

	items, err := st.GetMenuItems(context.Background(), "m")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 || items[0].Position != 0 || items[1].Position != 1 {
		t.Fatalf("got %+v", items)
	}
	if items[0].MenuID != "m" {
		t.Fatalf("menu id no seteado: %+v", items[0])
	}
}

func TestListAccessEventsNewestFirstWithFilter(t *testing.T) {
	st := New()
	ctx := context.Background()

	for i, v := range []string{"allow", "deny_not_found", "allow"} {
		ev := core.AccessEvent{
			UserID:     "u",
			ResourceID: core.ResourceID([]string{"r1", "r2", "r3"}[i]),
			Verdict:    v,
			OccurredAt: time.Date(2025, 1, 1, 0, i, 0, 0, time.UTC),
		}
		if err := st.InsertAccessEvent(ctx, &ev); err != nil {
			t.Fatal(err)
		}
		if ev.ID == "" {
			t.Fatal("insert no generó ID")
		}
	}

	got, err := st.ListAccessEvents(ctx, core.AccessEventFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[0].ResourceID != "r3" || got[2].ResourceID != "r1" {
		t.Fatalf("orden: %+v", got)
	}

	got, err = st.ListAccessEvents(ctx, core.AccessEventFilter{Verdict: "allow", Limit: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ResourceID != "r3" {
		t.Fatalf("filtro: %+v", got)
	}
}
