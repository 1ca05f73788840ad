package portal

import (
	"context"
	"errors"
	"testing"
)

func TestExplainRequiresAdmin(t *testing.T) {
	env := newTestEnv(t, Settings{LoginURL: "/login"})

	_, err := env.resolver.Explain(context.Background(), alice, alice, "r-acme-docs")
	if !errors.Is(err, ErrNotAdmin) {
		t.Fatalf("got %v, want ErrNotAdmin", err)
	}
}

func TestExplainReportsDecisionInputs(t *testing.T) {
	env := newTestEnv(t, Settings{LoginURL: "/login"})
	ctx := context.Background()

	ex, err := env.resolver.Explain(ctx, root, dave, "r-acme-docs")
	if err != nil {
		t.Fatal(err)
	}
	if ex.Verdict != DenyNotFound {
		t.Fatalf("verdict %q, want %q", ex.Verdict, DenyNotFound)
	}
	if env.audit.len() != 0 {
		t.Fatal("explain de una denegación emitió auditoría")
	}
	if ex.Subject != "dave" || ex.Resource != "r-acme-docs" {
		t.Fatalf("got %+v", ex)
	}
	if len(ex.UserPortals) != 1 || ex.UserPortals[0] != "globex" {
		t.Fatalf("user portals: %v", ex.UserPortals)
	}
	if ex.Reason == "" {
		t.Fatal("explain sin razón no sirve para diagnóstico")
	}
}

func TestExplainAnonymousSubject(t *testing.T) {
	env := newTestEnv(t, Settings{LoginURL: "/login"})

	ex, err := env.resolver.Explain(context.Background(), root, anon, "acme")
	if err != nil {
		t.Fatal(err)
	}
	if ex.Verdict != DenyRedirectLogin {
		t.Fatalf("verdict %q, want %q", ex.Verdict, DenyRedirectLogin)
	}
	if len(ex.UserPortals) != 0 || ex.ActivePortal != "" {
		t.Fatalf("subject anónimo con estado: %+v", ex)
	}
	if env.audit.len() != 0 {
		t.Fatal("explain con subject anónimo emitió auditoría")
	}
}

func TestExplainIsDryRun(t *testing.T) {
	env := newTestEnv(t, Settings{LoginURL: "/login"})
	ctx := context.Background()

	// alice entrando a su portal: Resolve activaría acme, Explain no.
	ex, err := env.resolver.Explain(ctx, root, alice, "acme")
	if err != nil {
		t.Fatal(err)
	}
	if ex.Verdict != Allow {
		t.Fatalf("verdict %q, want %q", ex.Verdict, Allow)
	}
	if _, ok, _ := env.state.Peek(ctx, alice.ID); ok {
		t.Fatal("explain mutó el portal activo")
	}
	if env.audit.len() != 0 {
		t.Fatal("explain emitió auditoría")
	}

	// El bypass de administrador tampoco audita en seco.
	if _, err := env.resolver.Explain(ctx, root, root, "acme"); err != nil {
		t.Fatal(err)
	}
	if env.audit.len() != 0 {
		t.Fatal("explain con subject admin emitió auditoría")
	}
}
