package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"chimera/internal/platform/store/pg"
	"chimera/internal/platform/store/sqlite"
)

// liteAdapter wraps sqlite.Lite and implements RowQuerier + TxRunner
// statements use ? placeholders, repos keep their own dialect
type liteAdapter struct {
	l      *sqlite.Lite
	tracer pg.QueryTracer
}

func newLiteAdapter(l *sqlite.Lite, tracer pg.QueryTracer) *liteAdapter {
	return &liteAdapter{l: l, tracer: tracer}
}

func (a *liteAdapter) Ping(ctx context.Context) error {
	if a == nil || a.l == nil {
		return errors.New("sqlite: nil adapter")
	}
	return a.l.DB.PingContext(ctx)
}

func (a *liteAdapter) Close() error { return a.l.Close() }

func (a *liteAdapter) Exec(ctx context.Context, q string, args ...any) (CommandTag, error) {
	return liteExec(ctx, a.l.DB, a.trace, q, args)
}

func (a *liteAdapter) Query(ctx context.Context, q string, args ...any) (Rows, error) {
	return liteQuery(ctx, a.l.DB, a.trace, q, args)
}

func (a *liteAdapter) QueryRow(ctx context.Context, q string, args ...any) Row {
	return liteQueryRow(ctx, a.l.DB, a.trace, q, args)
}

func (a *liteAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.l.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(liteTx{tx: tx, trace: a.trace}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (a *liteAdapter) trace(ctx context.Context, q string, args []any, start time.Time, err error) {
	if a.tracer == nil {
		return
	}
	elapsed := time.Since(start)
	a.tracer.OnQuery(ctx, pg.QueryEvent{
		SQL:       q,
		Args:      args,
		ElapsedUS: elapsed.Microseconds(),
		Err:       err,
		Slow:      a.l.Slow(elapsed),
	})
}

type traceFn func(ctx context.Context, q string, args []any, start time.Time, err error)

// sqlConn is the part of *sql.DB and *sql.Tx the helpers need
type sqlConn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func liteExec(ctx context.Context, c sqlConn, trace traceFn, q string, args []any) (CommandTag, error) {
	start := time.Now()
	res, err := c.ExecContext(ctx, q, args...)
	trace(ctx, q, args, start, err)
	if err != nil {
		return nil, err
	}
	return liteTag{res: res}, nil
}

func liteQuery(ctx context.Context, c sqlConn, trace traceFn, q string, args []any) (Rows, error) {
	start := time.Now()
	rs, err := c.QueryContext(ctx, q, args...)
	trace(ctx, q, args, start, err)
	if err != nil {
		return nil, err
	}
	return liteRows{r: rs}, nil
}

func liteQueryRow(ctx context.Context, c sqlConn, trace traceFn, q string, args []any) Row {
	start := time.Now()
	r := c.QueryRowContext(ctx, q, args...)
	return pgRow{
		r: r,
		done: func(scanErr error) {
			trace(ctx, q, args, start, scanErr)
		},
	}
}

// liteTx uses sql.Tx to satisfy RowQuerier inside a Tx
type liteTx struct {
	tx    *sql.Tx
	trace traceFn
}

func (t liteTx) Exec(ctx context.Context, q string, args ...any) (CommandTag, error) {
	return liteExec(ctx, t.tx, t.trace, q, args)
}

func (t liteTx) Query(ctx context.Context, q string, args ...any) (Rows, error) {
	return liteQuery(ctx, t.tx, t.trace, q, args)
}

func (t liteTx) QueryRow(ctx context.Context, q string, args ...any) Row {
	return liteQueryRow(ctx, t.tx, t.trace, q, args)
}

// liteRows adapts *sql.Rows to our Rows
type liteRows struct{ r *sql.Rows }

func (x liteRows) Next() bool            { return x.r.Next() }
func (x liteRows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x liteRows) Err() error            { return x.r.Err() }
func (x liteRows) Close()                { _ = x.r.Close() }
func (x liteRows) Columns() []string {
	cols, _ := x.r.Columns()
	return cols
}

// liteTag adapts sql.Result to our CommandTag
type liteTag struct{ res sql.Result }

func (t liteTag) RowsAffected() int64 {
	n, _ := t.res.RowsAffected()
	return n
}

func (t liteTag) String() string { return fmt.Sprintf("ROWS %d", t.RowsAffected()) }
