package store

import (
	"context"

	perr "chimera/internal/platform/errors"
)

// ExecOne runs a write that must touch exactly one row
func ExecOne(ctx context.Context, q RowQuerier, sql string, args ...any) error {
	tag, err := q.Exec(ctx, sql, args...)
	switch {
	case err != nil:
		return err
	case tag.RowsAffected() != 1:
		return perr.Newf(perr.ErrorCodeDB, "%d rows affected, want 1", tag.RowsAffected())
	}
	return nil
}

// One scans the single row sql returns
// no row is perr.ErrNotFound, a second row is an error
func One[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) (T, error) {
	var zero T
	out, err := collect(ctx, q, scan, 2, sql, args)
	switch {
	case err != nil:
		return zero, err
	case len(out) == 0:
		return zero, perr.ErrNotFound
	case len(out) > 1:
		return zero, perr.New(perr.ErrorCodeDB, "query returned more than one row")
	}
	return out[0], nil
}

// Many scans every row, an empty result is a non-nil empty slice
func Many[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) ([]T, error) {
	return collect(ctx, q, scan, -1, sql, args)
}

// collect scans at most limit rows, a negative limit reads them all
func collect[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), limit int, sql string, args []any) ([]T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []T{}
	for (limit < 0 || len(out) < limit) && rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
