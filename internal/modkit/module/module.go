// Package module is the contract modkit modules satisfy and the port lookup between them
package module

import (
	"reflect"

	phttp "chimera/internal/platform/net/http"
)

// Module is a mountable slice of the API that may export ports to other modules
type Module interface {
	Name() string
	MountRoutes(r phttp.Router)

	// Ports is the module's exported bundle, usually a struct of interfaces, nil when none
	Ports() any
}

// PortsOf finds a T in m's ports
// the bundle itself is tried first, then each exported field of a struct bundle
func PortsOf[T any](m Module) (T, bool) {
	var zero T
	p := m.Ports()
	if p == nil {
		return zero, false
	}
	if v, ok := p.(T); ok {
		return v, true
	}
	rv := reflect.ValueOf(p)
	if rv.Kind() != reflect.Struct {
		return zero, false
	}
	for i := range rv.NumField() {
		f := rv.Field(i)
		if !f.CanInterface() {
			continue
		}
		if v, ok := f.Interface().(T); ok {
			return v, true
		}
	}
	return zero, false
}

// MustPortsOf is PortsOf for boot wiring, a miss panics naming the module
func MustPortsOf[T any](m Module) T {
	v, ok := PortsOf[T](m)
	if !ok {
		panic("module: requested port not found on module " + m.Name())
	}
	return v
}
