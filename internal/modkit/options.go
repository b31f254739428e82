// Package modkit builds API modules from shared deps and options
package modkit

import (
	"chimera/internal/modkit/httpkit"
	"chimera/internal/modkit/module"
)

// Module is what api.Mount composes
type Module = module.Module

// Option adjusts how a module is built, later options win
type Option func(*Built)

// WithName names the module in logs and the port registry
func WithName(name string) Option { return func(b *Built) { b.Name = name } }

// WithPrefix mounts the module under prefix, e.g. /history
func WithPrefix(prefix string) Option { return func(b *Built) { b.Prefix = prefix } }

// WithMiddlewares appends module scoped middleware, run after the API stack
func WithMiddlewares(mw ...httpkit.Middleware) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithPorts hands a module the ports it consumes from another module
// the importing module owns T and asserts it back out of Built.Ports
func WithPorts[T any](p T) Option { return func(b *Built) { b.Ports = p } }

// WithSubrouter wraps the module router before its routes are registered
func WithSubrouter(fn func(httpkit.Router) httpkit.Router) Option {
	return func(b *Built) { b.Subrouter = fn }
}

// WithRegister adds routes next to the module's own
func WithRegister(fn func(httpkit.Router)) Option {
	return func(b *Built) { b.Register = fn }
}
