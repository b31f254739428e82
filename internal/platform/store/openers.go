package store

import (
	"context"
	"fmt"

	"chimera/internal/platform/store/pg"
	"chimera/internal/platform/store/sqlite"
)

const defaultConnectRetries = 20

// openPG opens the pool, waits for postgres and wraps it with the pgx adapter
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	var tracer pg.QueryTracer
	if cfg.PG.LogSQL {
		tracer = pg.Tracer(s.Log)
	}
	retries := cfg.PG.ConnectRetries
	if retries <= 0 {
		retries = defaultConnectRetries
	}

	p, err := pg.Open(ctx, pg.Config{
		URL:            cfg.PG.URL,
		AppName:        cfg.AppName,
		MaxConns:       cfg.PG.MaxConns,
		SlowMs:         cfg.PG.SlowQueryMs,
		ConnectRetries: retries,
		PingTimeout:    cfg.PG.PingTimeout,
	}, tracer)
	if err != nil {
		return nil, fmt.Errorf("pg open: %w", err)
	}
	return newPGAdapter(p), nil
}

// openSQLite opens the embedded database and wraps it with the sqlite adapter
func openSQLite(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	var tracer pg.QueryTracer
	if cfg.SQLite.LogSQL {
		tracer = pg.NamedTracer(s.Log, "sqlite")
	}
	l, err := sqlite.Open(ctx, sqlite.Config{
		DSN:    cfg.SQLite.DSN,
		SlowMs: cfg.SQLite.SlowQueryMs,
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}
	return newLiteAdapter(l, tracer), nil
}
