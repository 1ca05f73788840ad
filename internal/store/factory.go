package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/dropDatabas3/portalgate/internal/store/core"
	"github.com/dropDatabas3/portalgate/internal/store/memstore"
	"github.com/dropDatabas3/portalgate/internal/store/pg"
)

type Config struct {
	Driver   string
	DSN      string
	Postgres pg.Tuning
}

// Open devuelve el ContentStore según driver, y un close func.
func Open(ctx context.Context, cfg Config) (core.ContentStore, func(), error) {
	switch strings.ToLower(cfg.Driver) {
	case "postgres", "pg", "postgresql":
		s, err := pg.New(ctx, cfg.DSN, cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case "memory", "":
		return memstore.New(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported driver: %s", cfg.Driver)
	}
}
