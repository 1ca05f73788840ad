package portal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dropDatabas3/portalgate/internal/store/core"
)

func TestStateAutoSelectSinglePortal(t *testing.T) {
	s := NewStateMachine(newMemCache(t), 0)
	ctx := context.Background()

	p, ok, err := s.GetActive(ctx, "alice", []core.PortalID{"acme"})
	if err != nil {
		t.Fatal(err)
	}
	if !ok || p != "acme" {
		t.Fatalf("got (%q, %v), want auto-selected acme", p, ok)
	}

	// Y quedó persistido, no sólo devuelto.
	p, ok, err = s.Peek(ctx, "alice")
	if err != nil || !ok || p != "acme" {
		t.Fatalf("peek = (%q, %v, %v)", p, ok, err)
	}
}

func TestStateNoAutoSelectWithMultiplePortals(t *testing.T) {
	s := NewStateMachine(newMemCache(t), 0)

	p, ok, err := s.GetActive(context.Background(), "bob", []core.PortalID{"acme", "globex"})
	if err != nil {
		t.Fatal(err)
	}
	if ok || p != "" {
		t.Fatalf("got (%q, %v), want unset", p, ok)
	}
}

func TestStateSelectRejectsNonMember(t *testing.T) {
	s := NewStateMachine(newMemCache(t), 0)
	ctx := context.Background()

	_, err := s.Select(ctx, "dave", "acme", []core.PortalID{"globex"})
	if !errors.Is(err, ErrUnauthorizedPortal) {
		t.Fatalf("err = %v, want ErrUnauthorizedPortal", err)
	}

	// El intento fallido no dejó estado a medias.
	if _, ok, _ := s.Peek(ctx, "dave"); ok {
		t.Fatal("failed select left state behind")
	}
}

func TestStateSelectIsIdempotent(t *testing.T) {
	s := NewStateMachine(newMemCache(t), 0)
	ctx := context.Background()
	memberships := []core.PortalID{"acme", "globex"}

	for i := 0; i < 3; i++ {
		p, err := s.Select(ctx, "bob", "acme", memberships)
		if err != nil || p != "acme" {
			t.Fatalf("select #%d = (%q, %v)", i, p, err)
		}
	}

	p, ok, err := s.GetActive(ctx, "bob", memberships)
	if err != nil || !ok || p != "acme" {
		t.Fatalf("active = (%q, %v, %v)", p, ok, err)
	}
}

func TestStateStaleIsClearedOnRead(t *testing.T) {
	s := NewStateMachine(newMemCache(t), 0)
	ctx := context.Background()

	if _, err := s.Select(ctx, "bob", "acme", []core.PortalID{"acme", "globex"}); err != nil {
		t.Fatal(err)
	}

	// bob fue removido de acme: la próxima lectura limpia el estado y, como
	// le queda un solo portal, auto-selecciona globex.
	p, ok, err := s.GetActive(ctx, "bob", []core.PortalID{"globex"})
	if err != nil {
		t.Fatal(err)
	}
	if !ok || p != "globex" {
		t.Fatalf("got (%q, %v), want globex after stale eviction", p, ok)
	}
}

func TestStateStaleWithMultipleRemainingPortals(t *testing.T) {
	s := NewStateMachine(newMemCache(t), 0)
	ctx := context.Background()

	if _, err := s.Select(ctx, "eve", "p1", []core.PortalID{"p1", "p2", "p3"}); err != nil {
		t.Fatal(err)
	}

	p, ok, err := s.GetActive(ctx, "eve", []core.PortalID{"p2", "p3"})
	if err != nil {
		t.Fatal(err)
	}
	if ok || p != "" {
		t.Fatalf("got (%q, %v), want unset", p, ok)
	}

	// El estado stale fue borrado, no sólo ignorado.
	if _, ok, _ := s.Peek(ctx, "eve"); ok {
		t.Fatal("stale state still stored")
	}
}

func TestStateExpiresAfterTTL(t *testing.T) {
	s := NewStateMachine(newMemCache(t), 20*time.Millisecond)
	ctx := context.Background()

	if _, err := s.Select(ctx, "bob", "acme", []core.PortalID{"acme", "globex"}); err != nil {
		t.Fatal(err)
	}
	time.Sleep(40 * time.Millisecond)

	p, ok, err := s.GetActive(ctx, "bob", []core.PortalID{"acme", "globex"})
	if err != nil {
		t.Fatal(err)
	}
	if ok || p != "" {
		t.Fatalf("got (%q, %v), want expired", p, ok)
	}
}

func TestStateClear(t *testing.T) {
	s := NewStateMachine(newMemCache(t), 0)
	ctx := context.Background()

	if _, err := s.Select(ctx, "bob", "acme", []core.PortalID{"acme", "globex"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(ctx, "bob"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.Peek(ctx, "bob"); ok {
		t.Fatal("state survived clear")
	}

	// Clear de estado inexistente no es error.
	if err := s.Clear(ctx, "nobody"); err != nil {
		t.Fatalf("clear on empty: %v", err)
	}
}
