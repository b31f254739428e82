package store

import (
	"context"
	"errors"
	"testing"

	perr "chimera/internal/platform/errors"
)

type cmdTag int64

func (c cmdTag) String() string      { return "TAG" }
func (c cmdTag) RowsAffected() int64 { return int64(c) }

type fakeRowQuerier struct {
	execTag  CommandTag
	execErr  error
	rows     Rows
	queryErr error
}

func (f *fakeRowQuerier) Exec(context.Context, string, ...any) (CommandTag, error) {
	return f.execTag, f.execErr
}

func (f *fakeRowQuerier) Query(context.Context, string, ...any) (Rows, error) {
	return f.rows, f.queryErr
}

func (f *fakeRowQuerier) QueryRow(context.Context, string, ...any) Row { return nil }

// fakeRows yields ints, err is reported once iteration stops
type fakeRows struct {
	data   []int
	idx    int
	err    error
	closed bool
}

func newRows(data ...int) *fakeRows { return &fakeRows{data: data, idx: -1} }

func (r *fakeRows) Next() bool {
	r.idx++
	return r.idx < len(r.data)
}

func (r *fakeRows) Scan(dest ...any) error {
	*(dest[0].(*int)) = r.data[r.idx]
	return nil
}

func (r *fakeRows) Err() error        { return r.err }
func (r *fakeRows) Close()            { r.closed = true }
func (r *fakeRows) Columns() []string { return []string{"v"} }

func scanInt(r Row) (int, error) {
	var v int
	err := r.Scan(&v)
	return v, err
}

func TestExecOne(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	tests := []struct {
		name    string
		q       *fakeRowQuerier
		wantErr bool
	}{
		{"one row", &fakeRowQuerier{execTag: cmdTag(1)}, false},
		{"zero rows", &fakeRowQuerier{execTag: cmdTag(0)}, true},
		{"two rows", &fakeRowQuerier{execTag: cmdTag(2)}, true},
		{"negative count", &fakeRowQuerier{execTag: cmdTag(-1)}, true},
		{"exec error", &fakeRowQuerier{execErr: boom}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ExecOne(ctx, tc.q, "insert")
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestOne(t *testing.T) {
	ctx := context.Background()

	rows := newRows(7)
	v, err := One(ctx, &fakeRowQuerier{rows: rows}, scanInt, "select")
	if err != nil || v != 7 {
		t.Fatalf("One = %d, %v", v, err)
	}
	if !rows.closed {
		t.Fatalf("rows not closed")
	}

	if _, err := One(ctx, &fakeRowQuerier{rows: newRows()}, scanInt, "select"); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("empty result err = %v, want not found", err)
	}
	if _, err := One(ctx, &fakeRowQuerier{rows: newRows(1, 2, 3)}, scanInt, "select"); !perr.IsCode(err, perr.ErrorCodeDB) {
		t.Fatalf("extra rows err = %v", err)
	}

	iterErr := &fakeRows{idx: -1, err: errors.New("conn reset")}
	if _, err := One(ctx, &fakeRowQuerier{rows: iterErr}, scanInt, "select"); err == nil || perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("iterator error must win over not found, got %v", err)
	}
	if _, err := One(ctx, &fakeRowQuerier{queryErr: errors.New("syntax")}, scanInt, "select"); err == nil {
		t.Fatalf("query error must propagate")
	}
}

func TestMany(t *testing.T) {
	ctx := context.Background()

	got, err := Many(ctx, &fakeRowQuerier{rows: newRows(1, 2, 3)}, scanInt, "select")
	if err != nil || len(got) != 3 || got[2] != 3 {
		t.Fatalf("Many = %v, %v", got, err)
	}

	got, err = Many(ctx, &fakeRowQuerier{rows: newRows()}, scanInt, "select")
	if err != nil || got == nil || len(got) != 0 {
		t.Fatalf("empty result = %#v, %v", got, err)
	}

	failing := func(Row) (int, error) { return 0, errors.New("scan") }
	if _, err := Many(ctx, &fakeRowQuerier{rows: newRows(1)}, failing, "select"); err == nil {
		t.Fatalf("scan error must propagate")
	}

	rows := newRows(1)
	rows.err = errors.New("conn reset")
	if _, err := Many(ctx, &fakeRowQuerier{rows: rows}, scanInt, "select"); err == nil {
		t.Fatalf("rows error must propagate")
	}
}
