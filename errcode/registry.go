package errcode

import (
	"fmt"
	"sync"
)

// Registry rejects two different errors claiming the same code.
type Registry struct {
	mu    sync.RWMutex
	codes map[int]string // code -> module:msgKey
}

// NewRegistry creates an empty code registry
func NewRegistry() *Registry {
	return &Registry{codes: make(map[int]string)}
}

var globalRegistry = NewRegistry()

// Register adds err to the global registry and returns it, so it can wrap a var declaration.
// Panics on conflict: codes are declared at package init.
func Register(err *LayeredError) *LayeredError {
	if e := globalRegistry.Register(err); e != nil {
		panic(e.Error())
	}
	return err
}

// Register records the code of err.
// Registering the same code with the same module:msgKey again is a no-op.
func (r *Registry) Register(err *LayeredError) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := err.Module() + ":" + err.MsgKey()
	if existing, ok := r.codes[err.Code()]; ok {
		if existing != key {
			return fmt.Errorf("error code conflict: code %d is already registered as %s, cannot register as %s",
				err.Code(), existing, key)
		}
		return nil
	}
	r.codes[err.Code()] = key
	return nil
}

// Lookup returns the module:msgKey registered for code
func (r *Registry) Lookup(code int) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	key, ok := r.codes[code]
	return key, ok
}

// Count returns the number of registered codes
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.codes)
}

// GetAll returns a copy of the registered codes
func (r *Registry) GetAll() map[int]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	codes := make(map[int]string, len(r.codes))
	for k, v := range r.codes {
		codes[k] = v
	}
	return codes
}

// GetAllRegisteredCodes returns the codes known to the global registry
func GetAllRegisteredCodes() map[int]string {
	return globalRegistry.GetAll()
}
