package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"chimera/internal/platform/store/pg"
)

// pgxConn is the statement surface *pgxpool.Pool and pgx.Tx share
type pgxConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgQuerier runs statements on a pool or a transaction and reports each to the tracer
type pgQuerier struct {
	conn   pgxConn
	tracer pg.QueryTracer
	slow   time.Duration // negative never flags
}

func (q pgQuerier) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	start := time.Now()
	ct, err := q.conn.Exec(ctx, sql, args...)
	q.trace(ctx, sql, args, start, err)
	return pgTag{ct}, err
}

func (q pgQuerier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := q.conn.Query(ctx, sql, args...)
	q.trace(ctx, sql, args, start, err)
	if err != nil {
		return nil, err
	}
	return pgRows{rs}, nil
}

// QueryRow is traced once Scan returns so the scan error is part of the event
func (q pgQuerier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	start := time.Now()
	return pgRow{
		r: q.conn.QueryRow(ctx, sql, args...),
		done: func(err error) {
			q.trace(ctx, sql, args, start, err)
		},
	}
}

func (q pgQuerier) trace(ctx context.Context, sql string, args []any, start time.Time, err error) {
	if q.tracer == nil {
		return
	}
	elapsed := time.Since(start)
	q.tracer.OnQuery(ctx, pg.QueryEvent{
		SQL:       sql,
		Args:      args,
		ElapsedUS: elapsed.Microseconds(),
		Err:       err,
		Slow:      q.slow >= 0 && elapsed >= q.slow,
	})
}

// pgAdapter is the postgres TxRunner
type pgAdapter struct {
	pgQuerier
	p *pg.PG
}

func newPGAdapter(p *pg.PG) *pgAdapter {
	return &pgAdapter{
		p: p,
		pgQuerier: pgQuerier{
			conn:   p.Pool,
			tracer: p.Tracer,
			slow:   time.Duration(p.SlowMs) * time.Millisecond,
		},
	}
}

// Ping goes straight to the pool so readiness probes stay out of the query log
func (a *pgAdapter) Ping(ctx context.Context) error {
	if a == nil || a.p == nil || a.p.Pool == nil {
		return errors.New("pg: nil adapter")
	}
	return a.p.Pool.Ping(ctx)
}

func (a *pgAdapter) Close() error { a.p.Close(); return nil }

func (a *pgAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.p.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	return runTx(ctx, tx, a.pgQuerier, fn)
}

// txConn is the part of pgx.Tx runTx needs
type txConn interface {
	pgxConn
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// runTx commits when fn succeeds and rolls back otherwise
// statements inside the transaction keep the tracer of base
func runTx(ctx context.Context, tx txConn, base pgQuerier, fn func(q RowQuerier) error) error {
	q := base
	q.conn = tx
	if err := fn(q); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

type pgRow struct {
	r    pgx.Row
	done func(error)
}

func (x pgRow) Scan(dst ...any) error {
	err := x.r.Scan(dst...)
	if x.done != nil {
		x.done(err)
	}
	return err
}

type pgRows struct{ r pgx.Rows }

func (x pgRows) Next() bool            { return x.r.Next() }
func (x pgRows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x pgRows) Err() error            { return x.r.Err() }
func (x pgRows) Close()                { x.r.Close() }
func (x pgRows) Columns() []string {
	fds := x.r.FieldDescriptions()
	out := make([]string, len(fds))
	for i, fd := range fds {
		out[i] = fd.Name
	}
	return out
}

type pgTag struct{ t pgconn.CommandTag }

func (t pgTag) String() string      { return t.t.String() }
func (t pgTag) RowsAffected() int64 { return t.t.RowsAffected() }
