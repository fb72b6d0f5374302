package enum

import (
	"reflect"
	"sort"
	"sync"

	"github.com/KOMKZ/go-yogan-codec/logger"
	"go.uber.org/zap"
)

// Integer is the set of Go types that can back an enum
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Value is a typed member declaration for Define
type Value[T Integer] struct {
	Name  string
	Value T
	Alias string
}

type memberKey struct {
	rtype reflect.Type
	name  string
}

type aliasEntry struct {
	alias string
	ok    bool
}

// Registry holds the declared enum types of a process.
// Declarations are expected at startup; lookups are safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	types   map[reflect.Type]*Type
	byName  map[string]*Type
	overlay map[reflect.Type]map[string]string // bound aliases, win over declared ones

	aliases sync.Map // memberKey -> aliasEntry
	log     *logger.CtxZapLogger
}

// NewRegistry creates an empty registry. A nil logger discards output.
func NewRegistry(log *logger.CtxZapLogger) *Registry {
	if log == nil {
		log = logger.Nop()
	}
	return &Registry{
		types:   make(map[reflect.Type]*Type),
		byName:  make(map[string]*Type),
		overlay: make(map[reflect.Type]map[string]string),
		log:     log,
	}
}

// Define declares T with the given members, in declaration order
func Define[T Integer](r *Registry, values ...Value[T]) error {
	members := make([]Member, 0, len(values))
	for _, v := range values {
		i, ok := IntOf(reflect.ValueOf(v.Value))
		if !ok {
			err := ErrInvalidMember.
				WithMsg("member value exceeds the supported range").
				WithData("type", reflect.TypeFor[T]().String()).
				WithData("member", v.Name)
			r.log.Warn("enum declaration rejected",
				zap.String("type", reflect.TypeFor[T]().String()),
				zap.Error(err),
			)
			return err
		}
		members = append(members, Member{Name: v.Name, Value: i, Alias: v.Alias})
	}
	_, err := r.Register(reflect.TypeFor[T](), members...)
	return err
}

// MustDefine is Define that panics, for package-level declarations
func MustDefine[T Integer](r *Registry, values ...Value[T]) {
	if err := Define(r, values...); err != nil {
		panic(err)
	}
}

// Register declares rt with members. rt must be a named, non-builtin integer type.
// Rejected declarations are logged at warn level.
func (r *Registry) Register(rt reflect.Type, members ...Member) (*Type, error) {
	t, err := r.register(rt, members)
	if err != nil {
		name := "<nil>"
		if rt != nil {
			name = rt.String()
		}
		r.log.Warn("enum declaration rejected",
			zap.String("type", name),
			zap.Int("members", len(members)),
			zap.Error(err),
		)
		return nil, err
	}
	return t, nil
}

func (r *Registry) register(rt reflect.Type, members []Member) (*Type, error) {
	if err := checkEnumType(rt); err != nil {
		return nil, err
	}

	t := &Type{rtype: rt, members: make([]Member, 0, len(members))}
	slot := reflect.New(rt).Elem()
	seen := make(map[string]struct{}, len(members))
	for _, m := range members {
		if m.Name == "" {
			return nil, ErrInvalidMember.WithMsg("member name is empty").WithData("type", rt.String())
		}
		if _, dup := seen[m.Name]; dup {
			return nil, ErrInvalidMember.WithMsg("member declared twice").
				WithData("type", rt.String()).
				WithData("member", m.Name)
		}
		seen[m.Name] = struct{}{}
		if !fits(slot, m.Value) {
			return nil, ErrInvalidMember.WithMsg("member value does not fit the type").
				WithData("type", rt.String()).
				WithData("member", m.Name).
				WithData("value", m.Value)
		}
		t.members = append(t.members, m)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.types[rt]; exists {
		return nil, ErrAlreadyDefined.WithData("type", rt.String())
	}
	r.types[rt] = t
	r.byName[t.Name()] = t

	r.log.Debug("enum type registered",
		zap.String("type", t.Name()),
		zap.Int("members", t.Len()),
	)
	return t, nil
}

func checkEnumType(rt reflect.Type) error {
	if rt == nil {
		return ErrNotEnum.WithMsg("nil type is not an enum")
	}
	if !isSigned(rt.Kind()) && !isUnsigned(rt.Kind()) {
		return ErrNotEnum.WithMsgf("type %s is not an integer type", rt)
	}
	if rt.PkgPath() == "" {
		return ErrNotEnum.WithMsgf("builtin type %s cannot be an enum", rt)
	}
	return nil
}

func fits(slot reflect.Value, v int64) bool {
	if isUnsigned(slot.Kind()) {
		return v >= 0 && !slot.OverflowUint(uint64(v))
	}
	return !slot.OverflowInt(v)
}

// Lookup returns the declaration of rt
func (r *Registry) Lookup(rt reflect.Type) (*Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[rt]
	return t, ok
}

// Get is Lookup returning ErrNotEnum for undeclared types
func (r *Registry) Get(rt reflect.Type) (*Type, error) {
	if t, ok := r.Lookup(rt); ok {
		return t, nil
	}
	name := "<nil>"
	if rt != nil {
		name = rt.String()
	}
	return nil, ErrNotEnum.WithMsgf("type %s is not an enum", name).WithData("type", name)
}

// IsEnum reports whether rt itself (not *rt) is declared
func (r *Registry) IsEnum(rt reflect.Type) bool {
	_, ok := r.Lookup(rt)
	return ok
}

// LookupName finds a declaration by its package-qualified name
func (r *Registry) LookupName(name string) (*Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byName[name]
	return t, ok
}

// Types returns every declaration sorted by name
func (r *Registry) Types() []*Type {
	r.mu.RLock()
	out := make([]*Type, 0, len(r.types))
	for _, t := range r.types {
		out = append(out, t)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Bind attaches alias to a member of an already declared type, replacing any declared alias.
// Metadata built before the call keeps the old name.
func (r *Registry) Bind(typeName, member, alias string) error {
	if alias == "" {
		return ErrInvalidMember.WithMsg("alias is empty").
			WithData("type", typeName).
			WithData("member", member)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.byName[typeName]
	if !ok {
		return ErrNotEnum.WithMsgf("type %s is not an enum", typeName).WithData("type", typeName)
	}
	if _, ok := t.Member(member); !ok {
		return ErrInvalidMember.WithMsg("no such member").
			WithData("type", typeName).
			WithData("member", member)
	}

	bound, ok := r.overlay[t.rtype]
	if !ok {
		bound = make(map[string]string)
		r.overlay[t.rtype] = bound
	}
	bound[member] = alias
	r.aliases.Delete(memberKey{rtype: t.rtype, name: member})

	r.log.Debug("enum alias bound",
		zap.String("type", typeName),
		zap.String("member", member),
		zap.String("alias", alias),
	)
	return nil
}

// AliasOf returns the custom name attached to a member, if any.
// Results are cached per member.
func (r *Registry) AliasOf(rt reflect.Type, member string) (string, bool) {
	key := memberKey{rtype: rt, name: member}
	if cached, ok := r.aliases.Load(key); ok {
		e := cached.(aliasEntry)
		return e.alias, e.ok
	}

	e := r.resolveAlias(rt, member)
	r.aliases.Store(key, e)
	return e.alias, e.ok
}

func (r *Registry) resolveAlias(rt reflect.Type, member string) aliasEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if bound, ok := r.overlay[rt][member]; ok {
		return aliasEntry{alias: bound, ok: true}
	}
	t, ok := r.types[rt]
	if !ok {
		return aliasEntry{}
	}
	if m, ok := t.Member(member); ok && m.HasAlias() {
		return aliasEntry{alias: m.Alias, ok: true}
	}
	return aliasEntry{}
}
