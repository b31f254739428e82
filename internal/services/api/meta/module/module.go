// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	modkit "chimera/internal/modkit"
	"chimera/internal/modkit/httpkit"
	"chimera/internal/modkit/repokit"

	metahttp "chimera/internal/services/api/meta/http"
)

// Module serves the liveness, readiness and version endpoints
type Module struct{ modkit.Base }

// New constructs the meta module, readiness pings whichever store seams deps carries
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)

	d := metahttp.Deps{
		ServiceName: "chimera-api",
		StartedAt:   time.Now(),
		Checks:      []metahttp.Check{check("pg", deps.PG), check("sqlite", deps.Lite)},
	}
	return &Module{Base: b.Base(func(r httpkit.Router) { metahttp.Register(r, d) })}
}

// check reports a store HISTORY_DRIVER did not open as skipped
func check(name string, tx repokit.TxRunner) metahttp.Check {
	c := metahttp.Check{Name: name}
	if p, ok := tx.(repokit.Pinger); ok {
		c.Ping = p.Ping
	}
	return c
}

// Ports is nil, meta exports nothing
func (m *Module) Ports() any { return nil }
