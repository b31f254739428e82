// Package repokit binds SQL repositories to whichever store seam a module runs on
package repokit

import (
	"context"
	"fmt"
	"time"

	"chimera/internal/platform/store"
)

type (
	// Queryer is what a repo issues statements through, a pool or an open transaction
	Queryer = store.RowQuerier

	// TxRunner is a Queryer that can also open transactions
	TxRunner = store.TxRunner

	// Pinger is implemented by seams that can probe their backend
	Pinger = store.Pinger
)

// Binder produces a repo bound to q
// one Binder per SQL dialect lets a service rebind the same repo inside a transaction
type Binder[T any] interface {
	Bind(q Queryer) T
}

// MustBind binds b to q, a nil q is a wiring bug and panics
func MustBind[T any](b Binder[T], q Queryer) T {
	if q == nil {
		panic("repokit: nil Queryer")
	}
	return b.Bind(q)
}

// WithTx runs fn in a transaction on tx, fn's error rolls it back
func WithTx(ctx context.Context, tx TxRunner, fn func(q Queryer) error) error {
	return tx.Tx(ctx, fn)
}

// Guarder is a store that can probe every backend it opened
type Guarder interface {
	Guard(ctx context.Context) error
}

// bootProbe bounds MustGuard when ctx has no deadline of its own
const bootProbe = 15 * time.Second

// MustGuard panics unless every configured backend answers, run it once at boot
func MustGuard(ctx context.Context, g Guarder) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, bootProbe)
		defer cancel()
	}
	if err := g.Guard(ctx); err != nil {
		panic(fmt.Errorf("repokit: store guard: %w", err))
	}
}
