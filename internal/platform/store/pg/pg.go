// Package pg opens the pgx pool behind the postgres history store
package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultPingTimeout = 3 * time.Second
	backoffStart       = 150 * time.Millisecond
	backoffCeiling     = 2 * time.Second
)

// Config configures the pool and the boot ping loop
type Config struct {
	URL      string
	AppName  string
	MaxConns int32
	SlowMs   int

	// ConnectRetries bounds the boot ping loop, zero means a single attempt
	ConnectRetries int
	PingTimeout    time.Duration
}

// PG is a pool plus the tracer its adapter reports to
type PG struct {
	Pool   *pgxpool.Pool
	Tracer QueryTracer
	SlowMs int
}

// seams
var (
	newPool   = pgxpool.NewWithConfig
	pingPool  = func(ctx context.Context, p *pgxpool.Pool) error { return p.Ping(ctx) }
	closePool = func(p *pgxpool.Pool) { p.Close() }
)

// Open builds the pool and returns once postgres answers a ping
// replicas often boot before the database, so the ping is retried with backoff
func Open(ctx context.Context, cfg Config, tracer QueryTracer) (*PG, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("pg config: %w", err)
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	if cfg.AppName != "" {
		if pcfg.ConnConfig.RuntimeParams == nil {
			pcfg.ConnConfig.RuntimeParams = map[string]string{}
		}
		pcfg.ConnConfig.RuntimeParams["application_name"] = cfg.AppName
	}

	pool, err := newPool(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("pg pool: %w", err)
	}
	if err := waitReady(ctx, pool, cfg); err != nil {
		closePool(pool)
		return nil, err
	}
	return &PG{Pool: pool, Tracer: tracer, SlowMs: cfg.SlowMs}, nil
}

func waitReady(ctx context.Context, pool *pgxpool.Pool, cfg Config) error {
	attempts := max(cfg.ConnectRetries, 1)
	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}

	var err error
	backoff := backoffStart
	for i := 0; i < attempts; i++ {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		err = pingPool(pctx, pool)
		cancel()
		if err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, backoffCeiling)
	}
	return fmt.Errorf("postgres ping failed after %d attempts: %w", attempts, err)
}

// Close closes the pool
func (p *PG) Close() {
	if p != nil && p.Pool != nil {
		closePool(p.Pool)
	}
}
