// Package module wires analysis history into the API using modkit
package module

import (
	"context"
	"fmt"
	"time"

	modkit "chimera/internal/modkit"
	"chimera/internal/modkit/httpkit"
	"chimera/internal/modkit/repokit"
	historyhttp "chimera/internal/services/history/http"
	historyrepo "chimera/internal/services/history/repo"
	historysvc "chimera/internal/services/history/service"
)

// Module serves /history and exports the recorder analysis writes through
type Module struct {
	modkit.Base
	ports any
}

// schemaTimeout bounds EnsureSchema at boot, pg may still be taking the advisory lock
const schemaTimeout = 10 * time.Second

// New constructs the history module on the store seam chosen by HISTORY_DRIVER
// it panics when the selected seam is missing or the schema cannot be created
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build([]modkit.Option{
		modkit.WithName("history"),
		modkit.WithPrefix("/history"),
	}, opts...)

	svc, err := NewService(deps, FromConfig(deps.Cfg).Driver)
	if err != nil {
		panic(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), schemaTimeout)
	defer cancel()
	if err := svc.EnsureSchema(ctx); err != nil {
		panic(fmt.Errorf("history schema: %w", err))
	}

	return &Module{
		Base:  b.Base(func(r httpkit.Router) { historyhttp.Register(r, svc) }),
		ports: Ports{History: svc, Recorder: Recorder(svc)},
	}
}

// NewService binds the history repo for driver onto the matching store seam
func NewService(deps modkit.Deps, driver string) (*historysvc.Svc, error) {
	var (
		db     repokit.TxRunner
		binder repokit.Binder[historyrepo.Repo]
	)
	switch driver {
	case DriverPG:
		db, binder = deps.PG, historyrepo.NewPG()
	case DriverSQLite:
		db, binder = deps.Lite, historyrepo.NewSQLite()
	default:
		return nil, fmt.Errorf("history: unsupported driver %q", driver)
	}
	if db == nil {
		return nil, fmt.Errorf("history: driver %q selected but its store is not open", driver)
	}
	return historysvc.New(db, binder), nil
}
