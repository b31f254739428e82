// Package store provides a unified interface to optional storage backends
package store

import (
	"context"
	"errors"
	"fmt"
	"io"

	"chimera/internal/platform/logger"
)

// Store is the facade for optional backends
// zero value is safe but does nothing
type Store struct {
	// Log feeds the query tracers, the zero value discards
	Log logger.Logger

	// PG is the postgres sql seam, nil when disabled
	PG TxRunner

	// Lite is the embedded sqlite seam, nil when disabled
	Lite TxRunner
}

// Row exposes the minimal scan contract a single row needs
type Row interface {
	Scan(dest ...any) error
}

// Rows exposes the minimal iteration and scan for a result set
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

// CommandTag is a tiny interface to inspect command results
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the read and write surface repos use for sql
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner wraps transaction execution around a function
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Pinger is any seam that can report readiness
type Pinger interface{ Ping(context.Context) error }

// Option mutates the Store before any backend opens
type Option func(*Store) error

// WithLogger feeds the query tracers
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}

// Open constructs a Store with the requested backends
// backends not enabled in cfg remain nil on the Store
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}

	if cfg.PG.Enabled {
		db, err := openPG(ctx, cfg, s)
		if err != nil {
			return nil, err
		}
		s.PG = db
	}

	if cfg.SQLite.Enabled {
		db, err := openSQLite(ctx, cfg, s)
		if err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
		s.Lite = db
	}

	return s, nil
}

type backend struct {
	name string
	seam TxRunner
}

func (s *Store) backends() []backend {
	if s == nil {
		return nil
	}
	var out []backend
	if s.Lite != nil {
		out = append(out, backend{"sqlite", s.Lite})
	}
	if s.PG != nil {
		out = append(out, backend{"pg", s.PG})
	}
	return out
}

// Guard pings every configured backend that can be pinged
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	var errs []error
	for _, b := range s.backends() {
		if p, ok := b.seam.(Pinger); ok {
			if err := p.Ping(ctx); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", b.name, err))
			}
		}
	}
	return errors.Join(errs...)
}

// Close closes all initialized backends, nil backends are ignored
func (s *Store) Close(_ context.Context) error {
	var errs []error
	for _, b := range s.backends() {
		if c, ok := b.seam.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", b.name, err))
			}
		}
	}
	return errors.Join(errs...)
}
