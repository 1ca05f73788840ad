package portal

import (
	"context"
	"testing"
	"time"
)

func newLandingEnv(t *testing.T) (*LandingResolver, *StateMachine) {
	t.Helper()
	st := seedStore()
	sm := NewStateMachine(newMemCache(t), time.Hour)
	return NewLandingResolver(st, sm, "/admin", "/", "/portals"), sm
}

func TestLandingAdminGoesToPanel(t *testing.T) {
	lr, _ := newLandingEnv(t)

	l, err := lr.LandingFor(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	if l.Destination != DestinationAdmin || l.Path != "/admin" {
		t.Fatalf("got %+v", l)
	}
}

func TestLandingAnonymousAndPortalLessGoHome(t *testing.T) {
	lr, _ := newLandingEnv(t)
	ctx := context.Background()

	l, err := lr.LandingFor(ctx, anon)
	if err != nil {
		t.Fatal(err)
	}
	if l.Destination != DestinationHome || l.Path != "/" {
		t.Fatalf("anon: got %+v", l)
	}

	l, err = lr.LandingFor(ctx, carol)
	if err != nil {
		t.Fatal(err)
	}
	if l.Destination != DestinationHome || l.Path != "/" {
		t.Fatalf("carol: got %+v", l)
	}
}

func TestLandingSinglePortalActivates(t *testing.T) {
	lr, sm := newLandingEnv(t)
	ctx := context.Background()

	l, err := lr.LandingFor(ctx, alice)
	if err != nil {
		t.Fatal(err)
	}
	if l.Destination != DestinationPortal || l.Portal != "acme" || l.Path != "/portal/acme" {
		t.Fatalf("got %+v", l)
	}
	got, ok, err := sm.Peek(ctx, alice.ID)
	if err != nil || !ok || got != "acme" {
		t.Fatalf("estado tras landing: (%q, %v, %v)", got, ok, err)
	}
}

func TestLandingMultiPortalGoesToSelection(t *testing.T) {
	lr, sm := newLandingEnv(t)
	ctx := context.Background()

	l, err := lr.LandingFor(ctx, bob)
	if err != nil {
		t.Fatal(err)
	}
	if l.Destination != DestinationSelection || l.Path != "/portals" {
		t.Fatalf("got %+v", l)
	}
	// Con varias membresías nadie elige por el usuario.
	if _, ok, _ := sm.Peek(ctx, bob.ID); ok {
		t.Fatal("landing multi-portal no debe activar nada")
	}
}
