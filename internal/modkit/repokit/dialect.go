package repokit

import (
	"context"
	"strconv"
	"strings"

	"chimera/internal/platform/store"
)

// Rebind rewrites postgres $n placeholders to ? markers
// order holds the zero based argument index for each emitted marker
// placeholders inside single quoted literals are left alone
func Rebind(sql string) (out string, order []int) {
	var b strings.Builder
	b.Grow(len(sql))
	inQuote := false
	for i := 0; i < len(sql); i++ {
		c := sql[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
			b.WriteByte(c)
		case c == '$' && !inQuote && i+1 < len(sql) && isDigit(sql[i+1]):
			j := i + 1
			for j < len(sql) && isDigit(sql[j]) {
				j++
			}
			n, _ := strconv.Atoi(sql[i+1 : j])
			order = append(order, n-1)
			b.WriteByte('?')
			i = j - 1
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), order
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// Positional wraps q so repos written against $n placeholders run on ? drivers
func Positional(q Queryer) Queryer {
	if q == nil {
		return nil
	}
	return positional{q: q}
}

type positional struct{ q Queryer }

func (p positional) rebind(sql string, args []any) (string, []any) {
	out, order := Rebind(sql)
	if len(order) == 0 {
		return out, args
	}
	re := make([]any, len(order))
	for i, idx := range order {
		if idx >= 0 && idx < len(args) {
			re[i] = args[idx]
		}
	}
	return out, re
}

func (p positional) Exec(ctx context.Context, sql string, args ...any) (store.CommandTag, error) {
	sql, args = p.rebind(sql, args)
	return p.q.Exec(ctx, sql, args...)
}

func (p positional) Query(ctx context.Context, sql string, args ...any) (store.Rows, error) {
	sql, args = p.rebind(sql, args)
	return p.q.Query(ctx, sql, args...)
}

func (p positional) QueryRow(ctx context.Context, sql string, args ...any) store.Row {
	sql, args = p.rebind(sql, args)
	return p.q.QueryRow(ctx, sql, args...)
}
