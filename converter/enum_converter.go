package converter

import (
	"reflect"
	"unicode"
	"unicode/utf8"

	"github.com/KOMKZ/go-yogan-codec/enum"
	"github.com/KOMKZ/go-yogan-codec/metadata"
	"github.com/KOMKZ/go-yogan-codec/token"
)

// EnumConverter writes enums by display name and reads them back from a name or an integer.
//
// The display name is the member's custom name when it has one, else its declared name.
// A display name starting with a number character or '-' would read back as a number, so such
// values are written as their integer instead.
type EnumConverter struct {
	enumBase
	cache *metadata.Cache
}

// NewEnumConverter creates a converter over the declarations of types, reading display names from cache
func NewEnumConverter(types *enum.Registry, cache *metadata.Cache) *EnumConverter {
	return &EnumConverter{
		enumBase: enumBase{types: types},
		cache:    cache,
	}
}

// Name implements Converter
func (c *EnumConverter) Name() string {
	return "enum"
}

// CanHandle is true for declared enum types and pointers to them
func (c *EnumConverter) CanHandle(rt reflect.Type) bool {
	return c.canHandle(rt)
}

// Write implements Converter
func (c *EnumConverter) Write(w token.Writer, v any) error {
	typ, rv, ok, err := c.value(v)
	if err != nil {
		return err
	}
	if !ok {
		return w.WriteNull()
	}

	md, err := c.cache.Get(rv.Type())
	if err != nil {
		return err
	}

	name := typ.NameOf(rv)
	if display, ok := md.DisplayName(name); ok {
		name = display
	}

	if looksNumeric(name) {
		return c.writeInteger(w, typ, rv)
	}
	return w.WriteString(name)
}

// Read implements Converter
func (c *EnumConverter) Read(r token.Reader, rt reflect.Type) (any, error) {
	typ, nullable, err := c.target(rt)
	if err != nil {
		return nil, err
	}

	var v reflect.Value
	switch r.Kind() {
	case token.Null:
		return c.readNull(typ, rt, nullable)
	case token.String:
		s, _ := r.Value().(string)
		v, err = c.parse(typ, s)
	case token.Integer:
		v, err = c.readInteger(typ, r.Value())
	default:
		return nil, unexpected(typ, r.Kind())
	}
	if err != nil {
		return nil, err
	}
	return box(v, nullable), nil
}

// parse matches display names first, then declared names, both ignoring case
func (c *EnumConverter) parse(typ *enum.Type, s string) (reflect.Value, error) {
	md, err := c.cache.Get(typ.ReflectType())
	if err != nil {
		return reflect.Value{}, err
	}
	if e, ok := md.Match(s); ok {
		return typ.ValueOf(e.Member), nil
	}

	v, err := typ.ParseName(s)
	if err != nil {
		return reflect.Value{}, ErrParse.
			WithMsgf("error parsing enum value %q", s).
			WithData("type", typ.Name()).
			WithData("value", s).
			Wrap(err)
	}
	return v, nil
}

// looksNumeric reports whether s starts with a number character of any script, or '-'
func looksNumeric(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return false
	}
	return unicode.IsNumber(r) || r == '-'
}
