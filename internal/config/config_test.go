package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if c.Server.Addr != ":8080" {
		t.Fatalf("addr %q", c.Server.Addr)
	}
	if c.Storage.Driver != "memory" || c.Cache.Kind != "memory" {
		t.Fatalf("drivers: %q / %q", c.Storage.Driver, c.Cache.Kind)
	}
	if c.Portal.ActiveTTL != "1h" || c.ActiveTTL() != time.Hour {
		t.Fatalf("ttl: %q", c.Portal.ActiveTTL)
	}
	if c.Portal.LoginURL != "/login" || c.Portal.SelectionURL != "/portals" {
		t.Fatalf("urls: %+v", c.Portal)
	}
	if c.Audit.BufferSize != 256 {
		t.Fatalf("audit buffer %d", c.Audit.BufferSize)
	}
	if c.Log.Level != "info" || c.Log.Format != "json" {
		t.Fatalf("log: %+v", c.Log)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
server:
  addr: ":9090"
  read_timeout: 5s
storage:
  driver: postgres
  dsn: postgres://localhost/portalgate
portal:
  active_ttl: 30m
  denied_redirect_url: /denegado
  default_menu_id: m-main
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Server.Addr != ":9090" || c.Server.ReadTimeout != "5s" {
		t.Fatalf("server: %+v", c.Server)
	}
	if c.Storage.Driver != "postgres" || c.Storage.DSN != "postgres://localhost/portalgate" {
		t.Fatalf("storage: %+v", c.Storage)
	}
	if c.ActiveTTL() != 30*time.Minute {
		t.Fatalf("ttl: %v", c.ActiveTTL())
	}
	if c.Portal.DeniedRedirectURL != "/denegado" || c.Portal.DefaultMenuID != "m-main" {
		t.Fatalf("portal: %+v", c.Portal)
	}
	// Lo no seteado en el archivo conserva el default.
	if c.Server.WriteTimeout != "15s" {
		t.Fatalf("write timeout: %q", c.Server.WriteTimeout)
	}
}

func TestEnvOverridesWinOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  addr: \":9090\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("SERVER_ADDR", ":7070")
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("PORTAL_ACTIVE_TTL", "15m")
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("AUDIT_BUFFER_SIZE", "512")

	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Server.Addr != ":7070" {
		t.Fatalf("addr %q", c.Server.Addr)
	}
	if c.Storage.Driver != "postgres" {
		t.Fatalf("driver %q", c.Storage.Driver)
	}
	if c.ActiveTTL() != 15*time.Minute {
		t.Fatalf("ttl %v", c.ActiveTTL())
	}
	if c.Auth.JWTSecret != "s3cr3t" {
		t.Fatal("jwt secret no pisado")
	}
	if c.Audit.BufferSize != 512 {
		t.Fatalf("audit buffer %d", c.Audit.BufferSize)
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("PORTAL_ACTIVE_TTL", "una hora")
	if _, err := Load(""); err == nil {
		t.Fatal("duración inválida debe fallar")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/no/existe.yaml"); err == nil {
		t.Fatal("archivo inexistente debe fallar")
	}
}
