// Package cache provee el key/value con TTL donde vive el estado de
// portal activo por usuario.
//
// Soporta:
//   - Memory (in-process, para desarrollo/testing)
//   - Redis (distribuido, para producción)
//
// El Set es un overwrite atómico: exactamente un estado activo por usuario,
// last-write-wins.
package cache

import (
	"context"
	"time"
)

// Client define las operaciones de cache.
type Client interface {
	// Get obtiene un valor. Retorna ErrNotFound si no existe.
	Get(ctx context.Context, key string) (string, error)

	// Set guarda un valor con TTL. Si ttl es 0, no expira.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Delete elimina una key. Borrar una key inexistente no es error.
	Delete(ctx context.Context, key string) error

	// Ping verifica la conexión.
	Ping(ctx context.Context) error

	// Close cierra la conexión.
	Close() error
}

// Config configuración para crear un cliente de cache.
type Config struct {
	Driver   string // "memory" | "redis"
	Addr     string
	Password string
	DB       int
	Prefix   string // Prefijo para todas las keys
}

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (e errNotFound) Error() string { return "cache: key not found" }

// IsNotFound verifica si el error es porque la key no existe.
func IsNotFound(err error) bool {
	_, ok := err.(errNotFound)
	return ok
}

// New crea un cliente de cache según la configuración.
func New(cfg Config) (Client, error) {
	switch cfg.Driver {
	case "redis":
		return NewRedis(cfg), nil
	case "memory", "":
		return NewMemory(cfg.Prefix), nil
	default:
		return nil, errUnknownDriver(cfg.Driver)
	}
}

type errUnknownDriver string

func (e errUnknownDriver) Error() string { return "cache: unknown driver " + string(e) }
