// Package enum declares enumerated types to the codec.
//
// Go has no enum construct, so a named integer type becomes an enum when its
// members are declared to a Registry:
//
//	type Color int
//
//	const (
//		Red Color = iota
//		Green
//	)
//
//	enum.MustDefine(reg,
//		enum.Value[Color]{Name: "Red", Value: Red, Alias: "crimson"},
//		enum.Value[Color]{Name: "Green", Value: Green},
//	)
//
// The registry answers the type-system questions a converter needs: is a type
// an enum, what are its members, which custom name does a member carry, and
// how does a raw integer cast to the type.
package enum

import (
	"math"
	"math/big"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// Member is one declared enumerator
type Member struct {
	Name  string // declared identifier
	Value int64
	Alias string // custom display name, empty when none
}

// HasAlias reports whether the member declares a custom name
func (m Member) HasAlias() bool {
	return m.Alias != ""
}

// Type is a declared enumerated type. Immutable once registered.
type Type struct {
	rtype   reflect.Type
	members []Member
}

// ReflectType returns the Go type
func (t *Type) ReflectType() reflect.Type {
	return t.rtype
}

// Name returns the package-qualified type name, e.g. "color.Color"
func (t *Type) Name() string {
	return t.rtype.String()
}

// Members returns the members in declaration order
func (t *Type) Members() []Member {
	return slices.Clone(t.members)
}

// Len returns the number of declared members
func (t *Type) Len() int {
	return len(t.members)
}

// Unsigned reports whether the underlying integer is unsigned
func (t *Type) Unsigned() bool {
	return isUnsigned(t.rtype.Kind())
}

// Member returns the member with exactly the given declared name
func (t *Type) Member(name string) (Member, bool) {
	for _, m := range t.members {
		if m.Name == name {
			return m, true
		}
	}
	return Member{}, false
}

// NameOf returns the declared name of the first member holding v.
// A value no member holds is rendered as its decimal string.
func (t *Type) NameOf(v reflect.Value) string {
	i, ok := IntOf(v)
	if !ok {
		return strconv.FormatUint(v.Uint(), 10)
	}
	for _, m := range t.members {
		if m.Value == i {
			return m.Name
		}
	}
	return strconv.FormatInt(i, 10)
}

// ParseName matches s against the declared member names ignoring case.
// The first member in declaration order wins.
func (t *Type) ParseName(s string) (reflect.Value, error) {
	for _, m := range t.members {
		if strings.EqualFold(m.Name, s) {
			return t.ValueOf(m), nil
		}
	}
	return reflect.Value{}, ErrUnknownName.
		WithData("type", t.Name()).
		WithData("name", s)
}

// ValueOf returns m as a value of the enum type
func (t *Type) ValueOf(m Member) reflect.Value {
	out := reflect.New(t.rtype).Elem()
	if t.Unsigned() {
		out.SetUint(uint64(m.Value))
	} else {
		out.SetInt(m.Value)
	}
	return out
}

// Cast converts a Go integer to the enum type.
// Values without a member are accepted; values the underlying type cannot hold are not.
func (t *Type) Cast(raw any) (reflect.Value, error) {
	switch n := raw.(type) {
	case int64:
		return t.fromInt(n)
	case uint64:
		return t.fromUint(n)
	case *big.Int:
		switch {
		case n.IsInt64():
			return t.fromInt(n.Int64())
		case n.IsUint64():
			return t.fromUint(n.Uint64())
		default:
			return reflect.Value{}, t.outOfRange(n.String())
		}
	}

	rv := reflect.ValueOf(raw)
	switch {
	case rv.IsValid() && isSigned(rv.Kind()):
		return t.fromInt(rv.Int())
	case rv.IsValid() && isUnsigned(rv.Kind()):
		return t.fromUint(rv.Uint())
	default:
		return reflect.Value{}, ErrOutOfRange.
			WithMsgf("cannot cast %T to %s", raw, t.Name()).
			WithData("type", t.Name())
	}
}

func (t *Type) fromInt(i int64) (reflect.Value, error) {
	out := reflect.New(t.rtype).Elem()
	if t.Unsigned() {
		if i < 0 || out.OverflowUint(uint64(i)) {
			return reflect.Value{}, t.outOfRange(strconv.FormatInt(i, 10))
		}
		out.SetUint(uint64(i))
		return out, nil
	}
	if out.OverflowInt(i) {
		return reflect.Value{}, t.outOfRange(strconv.FormatInt(i, 10))
	}
	out.SetInt(i)
	return out, nil
}

func (t *Type) fromUint(u uint64) (reflect.Value, error) {
	if !t.Unsigned() {
		if u > math.MaxInt64 {
			return reflect.Value{}, t.outOfRange(strconv.FormatUint(u, 10))
		}
		return t.fromInt(int64(u))
	}
	out := reflect.New(t.rtype).Elem()
	if out.OverflowUint(u) {
		return reflect.Value{}, t.outOfRange(strconv.FormatUint(u, 10))
	}
	out.SetUint(u)
	return out, nil
}

func (t *Type) outOfRange(value string) error {
	return ErrOutOfRange.
		WithData("type", t.Name()).
		WithData("value", value).
		WithData("kind", t.rtype.Kind().String())
}

// IntOf returns the integer held by v.
// ok is false for unsigned values above math.MaxInt64 and for non-integer kinds.
func IntOf(v reflect.Value) (int64, bool) {
	switch {
	case isSigned(v.Kind()):
		return v.Int(), true
	case isUnsigned(v.Kind()):
		u := v.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	default:
		return 0, false
	}
}

// Unwrap strips the nullable wrapper: for *E it returns E and true
func Unwrap(t reflect.Type) (reflect.Type, bool) {
	if t != nil && t.Kind() == reflect.Pointer {
		return t.Elem(), true
	}
	return t, false
}

func isSigned(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUnsigned(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}
