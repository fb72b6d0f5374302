package converter

import (
	"reflect"
	"sync"

	"github.com/KOMKZ/go-yogan-codec/logger"
	"github.com/KOMKZ/go-yogan-codec/token"
	"go.uber.org/zap"
)

// Registry dispatches values to the first converter, in registration order, that handles their type.
// Resolutions are remembered per type until the converter set changes.
type Registry struct {
	mu         sync.RWMutex
	converters []Converter
	resolved   map[reflect.Type]Converter // nil value: nothing handles the type

	log *logger.CtxZapLogger
}

// NewRegistry creates a registry holding converters in order. A nil logger discards output.
func NewRegistry(log *logger.CtxZapLogger, converters ...Converter) *Registry {
	if log == nil {
		log = logger.Nop()
	}
	return &Registry{
		converters: converters,
		resolved:   make(map[reflect.Type]Converter),
		log:        log,
	}
}

// Add appends a converter. It only wins for types no earlier converter handles.
func (r *Registry) Add(c Converter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.converters = append(r.converters, c)
	r.resolved = make(map[reflect.Type]Converter)
}

// Prepend inserts a converter ahead of the others
func (r *Registry) Prepend(c Converter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.converters = append([]Converter{c}, r.converters...)
	r.resolved = make(map[reflect.Type]Converter)
}

// Converters returns the registered converters in order
func (r *Registry) Converters() []Converter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Converter, len(r.converters))
	copy(out, r.converters)
	return out
}

// CanHandle reports whether any converter handles rt
func (r *Registry) CanHandle(rt reflect.Type) bool {
	_, err := r.Resolve(rt)
	return err == nil
}

// Resolve returns the converter for rt
func (r *Registry) Resolve(rt reflect.Type) (Converter, error) {
	r.mu.RLock()
	c, ok := r.resolved[rt]
	r.mu.RUnlock()

	if !ok {
		c = r.resolve(rt)
	}
	if c == nil {
		name := "<nil>"
		if rt != nil {
			name = rt.String()
		}
		return nil, ErrNoConverter.WithData("type", name)
	}
	return c, nil
}

func (r *Registry) resolve(rt reflect.Type) Converter {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.resolved[rt]; ok {
		return c
	}

	var found Converter
	for _, c := range r.converters {
		if c.CanHandle(rt) {
			found = c
			break
		}
	}
	r.resolved[rt] = found

	if found != nil {
		r.log.Debug("converter resolved",
			zap.Stringer("type", rt),
			zap.String("converter", found.Name()))
	}
	return found
}

// Write writes v with the converter for its dynamic type. A nil interface is written as null.
func (r *Registry) Write(w token.Writer, v any) error {
	if v == nil {
		return w.WriteNull()
	}
	c, err := r.Resolve(reflect.TypeOf(v))
	if err != nil {
		return err
	}
	return c.Write(w, v)
}

// Read reads a value of rt with the converter for rt
func (r *Registry) Read(tr token.Reader, rt reflect.Type) (any, error) {
	c, err := r.Resolve(rt)
	if err != nil {
		return nil, err
	}
	return c.Read(tr, rt)
}
