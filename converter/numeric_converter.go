package converter

import (
	"reflect"

	"github.com/KOMKZ/go-yogan-codec/enum"
	"github.com/KOMKZ/go-yogan-codec/token"
)

// NumericEnumConverter writes enums as their integer value and reads only integers and null
type NumericEnumConverter struct {
	enumBase
}

// NewNumericEnumConverter creates a converter over the declarations of types
func NewNumericEnumConverter(types *enum.Registry) *NumericEnumConverter {
	return &NumericEnumConverter{enumBase: enumBase{types: types}}
}

// Name implements Converter
func (c *NumericEnumConverter) Name() string {
	return "enum_number"
}

// CanHandle is true for declared enum types and pointers to them
func (c *NumericEnumConverter) CanHandle(rt reflect.Type) bool {
	return c.canHandle(rt)
}

// Write implements Converter
func (c *NumericEnumConverter) Write(w token.Writer, v any) error {
	typ, rv, ok, err := c.value(v)
	if err != nil {
		return err
	}
	if !ok {
		return w.WriteNull()
	}
	return c.writeInteger(w, typ, rv)
}

// Read implements Converter
func (c *NumericEnumConverter) Read(r token.Reader, rt reflect.Type) (any, error) {
	typ, nullable, err := c.target(rt)
	if err != nil {
		return nil, err
	}

	switch r.Kind() {
	case token.Null:
		return c.readNull(typ, rt, nullable)
	case token.Integer:
		v, err := c.readInteger(typ, r.Value())
		if err != nil {
			return nil, err
		}
		return box(v, nullable), nil
	default:
		return nil, unexpected(typ, r.Kind())
	}
}
