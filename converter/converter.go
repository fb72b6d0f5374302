// Package converter turns enum values into tokens and back.
//
// A Converter is a plugin: the Registry asks each one in turn whether it handles
// a type and hands the value to the first that does.
package converter

import (
	"reflect"

	"github.com/KOMKZ/go-yogan-codec/enum"
	"github.com/KOMKZ/go-yogan-codec/token"
)

// Converter converts the values of the types it handles
type Converter interface {
	// Name short identifier, used in logs
	Name() string

	// CanHandle reports whether the converter applies to rt. Must be free of side effects.
	CanHandle(rt reflect.Type) bool

	// Write emits exactly one token for v. A nil v, or a nil pointer, is written as null.
	Write(w token.Writer, v any) error

	// Read converts the current token to a value of rt
	Read(r token.Reader, rt reflect.Type) (any, error)
}

// enumBase holds what every enum converter shares: nullable unwrapping, null handling and integer casts
type enumBase struct {
	types *enum.Registry
}

func (b enumBase) canHandle(rt reflect.Type) bool {
	if rt == nil {
		return false
	}
	base, _ := enum.Unwrap(rt)
	return b.types.IsEnum(base)
}

// value dereferences v. ok is false when v is nil or a nil pointer.
func (b enumBase) value(v any) (*enum.Type, reflect.Value, bool, error) {
	if v == nil {
		return nil, reflect.Value{}, false, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, reflect.Value{}, false, nil
		}
		rv = rv.Elem()
	}
	typ, err := b.types.Get(rv.Type())
	if err != nil {
		return nil, reflect.Value{}, false, err
	}
	return typ, rv, true, nil
}

// target resolves rt, reporting whether it is the nullable form
func (b enumBase) target(rt reflect.Type) (*enum.Type, bool, error) {
	if rt == nil {
		return nil, false, ErrNotEnum.WithData("type", "<nil>")
	}
	base, nullable := enum.Unwrap(rt)
	typ, err := b.types.Get(base)
	if err != nil {
		return nil, false, err
	}
	return typ, nullable, nil
}

func (b enumBase) readNull(typ *enum.Type, rt reflect.Type, nullable bool) (any, error) {
	if !nullable {
		return nil, ErrTypeMismatch.
			WithMsg("cannot convert null to non-nullable enum type").
			WithData("type", typ.Name())
	}
	return reflect.Zero(rt).Interface(), nil
}

func (b enumBase) readInteger(typ *enum.Type, raw any) (reflect.Value, error) {
	v, err := typ.Cast(raw)
	if err != nil {
		return reflect.Value{}, ErrTypeMismatch.
			WithData("type", typ.Name()).
			WithData("value", raw).
			Wrap(err)
	}
	return v, nil
}

func (b enumBase) writeInteger(w token.Writer, typ *enum.Type, rv reflect.Value) error {
	if typ.Unsigned() {
		return w.WriteUint(rv.Uint())
	}
	return w.WriteInt(rv.Int())
}

func unexpected(typ *enum.Type, k token.Kind) error {
	return ErrUnexpectedToken.
		WithMsgf("unexpected token %s when parsing enum", k).
		WithData("type", typ.Name()).
		WithData("token", k.String())
}

// box returns v as E, or as a fresh *E when the target is nullable
func box(v reflect.Value, nullable bool) any {
	if !nullable {
		return v.Interface()
	}
	p := reflect.New(v.Type())
	p.Elem().Set(v)
	return p.Interface()
}
