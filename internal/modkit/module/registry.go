package module

import "sync"

// the registry carries ports between modules while api.Mount composes them
// Mount resets it, so one process can compose more than once
var (
	mu    sync.RWMutex
	ports = map[string]any{}
)

// Register publishes a module's ports under its name, replacing earlier ones
func Register(name string, p any) {
	mu.Lock()
	defer mu.Unlock()
	ports[name] = p
}

// PortsAs returns name's ports asserted to T, false when absent or of another type
func PortsAs[T any](name string) (T, bool) {
	mu.RLock()
	defer mu.RUnlock()
	v, ok := ports[name].(T)
	return v, ok
}

// Reset clears the registry
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	clear(ports)
}
