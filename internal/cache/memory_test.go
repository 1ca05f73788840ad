package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemorySetGetDelete(t *testing.T) {
	c := NewMemory("")
	ctx := context.Background()

	if err := c.Set(ctx, "k", "v1", 0); err != nil {
		t.Fatal(err)
	}
	got, err := c.Get(ctx, "k")
	if err != nil || got != "v1" {
		t.Fatalf("got (%q, %v)", got, err)
	}

	// Overwrite atómico: last-write-wins.
	if err := c.Set(ctx, "k", "v2", 0); err != nil {
		t.Fatal(err)
	}
	got, _ = c.Get(ctx, "k")
	if got != "v2" {
		t.Fatalf("got %q, want v2", got)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Get(ctx, "k"); !IsNotFound(err) {
		t.Fatalf("got %v, want not found", err)
	}

	// Borrar una key inexistente no es error.
	if err := c.Delete(ctx, "nope"); err != nil {
		t.Fatal(err)
	}
}

func TestMemoryTTLExpires(t *testing.T) {
	c := NewMemory("")
	ctx := context.Background()

	if err := c.Set(ctx, "k", "v", 20*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Get(ctx, "k"); err != nil {
		t.Fatalf("antes de expirar: %v", err)
	}
	time.Sleep(40 * time.Millisecond)
	if _, err := c.Get(ctx, "k"); !IsNotFound(err) {
		t.Fatalf("tras expirar: got %v, want not found", err)
	}
}

func TestNewUnknownDriver(t *testing.T) {
	if _, err := New(Config{Driver: "memcached"}); err == nil {
		t.Fatal("driver desconocido debe fallar")
	}
}
