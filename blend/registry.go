package blend

import "sync"

// Custom mode registry - protected by mutex for thread-safe access.
var (
	registryMu  sync.RWMutex
	customModes = make(map[string]Func)
)

// Register registers a custom blend function under the given name.
// Registered functions are consulted when a Mode does not match any of the
// builtin modes, following the database/sql driver pattern:
//
//	func init() {
//	    blend.Register("glow", func(a, b float64) float64 {
//	        return math.Min(1, a+b*b)
//	    })
//	}
//
// Register panics if fn is nil or the name is already registered, so that
// duplicate registrations are caught during program initialization.
func Register(name string, fn Func) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if fn == nil {
		panic("blend: Register function is nil")
	}
	if _, dup := customModes[name]; dup {
		panic("blend: Register called twice for " + name)
	}
	customModes[name] = fn
}

// Unregister removes a custom blend function from the registry.
// This is primarily useful for testing. Unknown names are a no-op.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(customModes, name)
}

// lookupCustom returns the registered function for a name, if any.
func lookupCustom(name string) (Func, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	fn, ok := customModes[name]
	return fn, ok
}
