package modkit

import (
	"chimera/internal/modkit/httpkit"
	str "chimera/internal/platform/strings"
)

// Built is the resolved option set a module constructor reads
type Built struct {
	Name   string
	Prefix string
	Mw     httpkit.Middlewares
	Ports  any

	Subrouter func(httpkit.Router) httpkit.Router
	Register  func(httpkit.Router)
}

// Build applies defaults then opts, so callers override module defaults
func Build(defaults []Option, opts ...Option) Built {
	var b Built
	for _, o := range append(defaults[:len(defaults):len(defaults)], opts...) {
		o(&b)
	}
	b.Mw = append(httpkit.Middlewares(nil), b.Mw...)
	return b
}

// Base is the routing half of a module, modules embed it next to their Ports
type Base struct {
	b      Built
	routes func(httpkit.Router)
}

// Base binds the module's own routes to the built options
func (b Built) Base(routes func(httpkit.Router)) Base { return Base{b: b, routes: routes} }

// Name panics when the module was built without one
func (m Base) Name() string { return str.MustString(m.b.Name, "module name") }

// Prefix is the cleaned mount prefix, it panics when unset
func (m Base) Prefix() string { return str.MustPrefix(m.b.Prefix) }

// Middlewares returns the module scoped middleware in run order
func (m Base) Middlewares() httpkit.Middlewares { return m.b.Mw }

// MountRoutes mounts the module under its prefix
// order inside the prefix: middleware, subrouter, own routes, extra routes
func (m Base) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.Prefix(), m.b.Mw, func(sub httpkit.Router) {
		if m.b.Subrouter != nil {
			sub = m.b.Subrouter(sub)
		}
		if m.routes != nil {
			m.routes(sub)
		}
		if m.b.Register != nil {
			m.b.Register(sub)
		}
	})
}
