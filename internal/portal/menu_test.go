package portal

import (
	"context"
	"testing"

	"github.com/dropDatabas3/portalgate/internal/store/core"
)

func TestResolveMenuUsesActivePortalMenu(t *testing.T) {
	st := seedStore()
	f := NewMenuFilter(st, "m-default")

	id, ok, err := f.ResolveMenu(context.Background(), "acme")
	if err != nil || !ok || id != "m-acme" {
		t.Fatalf("got (%q, %v, %v), want m-acme", id, ok, err)
	}
}

func TestResolveMenuFallsBackToDefault(t *testing.T) {
	st := seedStore()
	f := NewMenuFilter(st, "m-default")
	ctx := context.Background()

	// orphan no tiene menú asignado.
	id, ok, err := f.ResolveMenu(ctx, "orphan")
	if err != nil || !ok || id != "m-default" {
		t.Fatalf("got (%q, %v, %v), want default", id, ok, err)
	}

	// Sin portal activo también cae al default.
	id, ok, err = f.ResolveMenu(ctx, "")
	if err != nil || !ok || id != "m-default" {
		t.Fatalf("sin activo: got (%q, %v, %v), want default", id, ok, err)
	}
}

func TestResolveMenuNoneConfigured(t *testing.T) {
	st := seedStore()
	f := NewMenuFilter(st, "")

	_, ok, err := f.ResolveMenu(context.Background(), "orphan")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected no menu")
	}
}

func TestFilterItemsByMembership(t *testing.T) {
	st := seedStore()
	f := NewMenuFilter(st, "")
	ctx := context.Background()

	// alice (miembro de acme) ve las tres entradas del menú acme.
	items, err := f.FilterItems(ctx, "m-acme", alice, []core.PortalID{"acme"})
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 3 {
		t.Fatalf("alice ve %d entradas, want 3", len(items))
	}
	// El orden original se preserva.
	if items[0].Label != "Pública" || items[1].Label != "Docs" || items[2].Label != "Soporte" {
		t.Fatalf("orden alterado: %+v", items)
	}

	// dave (globex) pierde Docs pero conserva la pública y el link custom.
	items, err = f.FilterItems(ctx, "m-acme", dave, []core.PortalID{"globex"})
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("dave ve %d entradas, want 2", len(items))
	}
	if items[0].Label != "Pública" || items[1].Label != "Soporte" {
		t.Fatalf("dave ve: %+v", items)
	}
}

func TestFilterItemsAnonymousDropsRestricted(t *testing.T) {
	st := seedStore()
	f := NewMenuFilter(st, "")

	items, err := f.FilterItems(context.Background(), "m-acme", anon, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, it := range items {
		if it.Label == "Docs" {
			t.Fatal("anonymous sees restricted entry")
		}
	}
	if len(items) != 2 {
		t.Fatalf("anon ve %d entradas, want 2", len(items))
	}
}

func TestFilterItemsAdminSeesAll(t *testing.T) {
	st := seedStore()
	f := NewMenuFilter(st, "")

	items, err := f.FilterItems(context.Background(), "m-acme", root, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 3 {
		t.Fatalf("admin ve %d entradas, want 3", len(items))
	}
}

func TestFilterItemsDanglingTargetOmitted(t *testing.T) {
	st := seedStore()
	st.SetMenuItems("m-broken", []core.MenuItem{
		{Type: core.MenuItemPage, Label: "Viva", TargetID: "r-public"},
		{Type: core.MenuItemPage, Label: "Borrada", TargetID: "gone"},
	})
	f := NewMenuFilter(st, "")

	items, err := f.FilterItems(context.Background(), "m-broken", carol, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].Label != "Viva" {
		t.Fatalf("got %+v, want only Viva", items)
	}
}

func TestFilterItemsUnknownMenuIsEmpty(t *testing.T) {
	st := seedStore()
	f := NewMenuFilter(st, "")

	items, err := f.FilterItems(context.Background(), "no-such", alice, []core.PortalID{"acme"})
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 0 {
		t.Fatalf("got %d items, want 0", len(items))
	}
}
