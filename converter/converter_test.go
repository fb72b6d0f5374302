package converter

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"sync"
	"testing"

	"github.com/KOMKZ/go-yogan-codec/enum"
	"github.com/KOMKZ/go-yogan-codec/metadata"
	"github.com/KOMKZ/go-yogan-codec/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type color int

const (
	red color = iota
	green
	blue
)

type rank int

const (
	first rank = iota + 1
	second
	minus
)

type level uint8

type wide uint64

type plain int

func newTestConverter(t *testing.T) (*EnumConverter, *enum.Registry) {
	t.Helper()
	types := enum.NewRegistry(nil)
	require.NoError(t, enum.Define(types,
		enum.Value[color]{Name: "Red", Value: red, Alias: "crimson"},
		enum.Value[color]{Name: "Green", Value: green},
		enum.Value[color]{Name: "Blue", Value: blue, Alias: "NAVY"},
	))
	require.NoError(t, enum.Define(types,
		enum.Value[rank]{Name: "First", Value: first, Alias: "1st"},
		enum.Value[rank]{Name: "Second", Value: second},
		enum.Value[rank]{Name: "Minus", Value: minus, Alias: "-x"},
	))
	require.NoError(t, enum.Define(types,
		enum.Value[level]{Name: "Low", Value: 1},
		enum.Value[level]{Name: "High", Value: 200},
	))
	require.NoError(t, enum.Define(types,
		enum.Value[wide]{Name: "Small", Value: 5},
	))
	return NewEnumConverter(types, metadata.NewCache(types)), types
}

func write(t *testing.T, c Converter, v any) token.Value {
	t.Helper()
	var rec token.Recorder
	require.NoError(t, c.Write(&rec, v))
	require.Equal(t, 1, rec.Count)
	return rec.Token
}

func TestEnumConverter_RoundTrip(t *testing.T) {
	c, types := newTestConverter(t)

	for _, typ := range types.Types() {
		for _, m := range typ.Members() {
			v := typ.ValueOf(m).Interface()
			t.Run(fmt.Sprintf("%s.%s", typ.Name(), m.Name), func(t *testing.T) {
				tok := write(t, c, v)
				got, err := c.Read(tok, typ.ReflectType())
				require.NoError(t, err)
				assert.Equal(t, v, got)
			})
		}
	}
}

func TestEnumConverter_RoundTrip_Undeclared(t *testing.T) {
	c, _ := newTestConverter(t)

	for _, v := range []any{color(42), color(-3), level(255), wide(math.MaxUint64)} {
		tok := write(t, c, v)
		assert.Equal(t, token.Integer, tok.Kind(), "%v", v)

		got, err := c.Read(tok, reflect.TypeOf(v))
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestEnumConverter_Write(t *testing.T) {
	c, _ := newTestConverter(t)
	blueVal := blue
	var nilColor *color

	tests := []struct {
		name string
		v    any
		want token.Value
	}{
		{"custom name", red, token.Value{K: token.String, V: "crimson"}},
		{"declared name", green, token.Value{K: token.String, V: "Green"}},
		{"pointer", &blueVal, token.Value{K: token.String, V: "NAVY"}},
		{"numeric-looking custom name", first, token.Value{K: token.Integer, V: int64(1)}},
		{"minus custom name", minus, token.Value{K: token.Integer, V: int64(3)}},
		{"unsigned", level(200), token.Value{K: token.String, V: "High"}},
		{"undeclared unsigned", wide(math.MaxUint64), token.Value{K: token.Integer, V: uint64(math.MaxUint64)}},
		{"nil", nil, token.Value{K: token.Null}},
		{"nil pointer", nilColor, token.Value{K: token.Null}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, write(t, c, tt.v))
		})
	}
}

func TestLooksNumeric(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"1st", true},
		{"-x", true},
		{"٣ arabic-indic", true},
		{"Ⅻ roman", true},
		{"½ half", true},
		{"x1", false},
		{"Ölfarbe", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, looksNumeric(tt.in))
		})
	}
}

func TestEnumConverter_Write_NotEnum(t *testing.T) {
	c, _ := newTestConverter(t)

	var rec token.Recorder
	err := c.Write(&rec, plain(1))
	assert.ErrorIs(t, err, ErrNotEnum)
	assert.Equal(t, 0, rec.Count)
}

func TestEnumConverter_Null(t *testing.T) {
	c, _ := newTestConverter(t)
	null := token.Value{K: token.Null}

	got, err := c.Read(null, reflect.TypeFor[*color]())
	require.NoError(t, err)
	assert.Nil(t, got.(*color))

	_, err = c.Read(null, reflect.TypeFor[color]())
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestEnumConverter_Read(t *testing.T) {
	c, _ := newTestConverter(t)

	tests := []struct {
		name  string
		tok   token.Value
		rtype reflect.Type
		want  any
	}{
		{"custom name", token.Value{K: token.String, V: "crimson"}, reflect.TypeFor[color](), red},
		{"custom name upper", token.Value{K: token.String, V: "CRIMSON"}, reflect.TypeFor[color](), red},
		{"custom name lower", token.Value{K: token.String, V: "navy"}, reflect.TypeFor[color](), blue},
		{"declared name fallback", token.Value{K: token.String, V: "Red"}, reflect.TypeFor[color](), red},
		{"declared name any case", token.Value{K: token.String, V: "bLuE"}, reflect.TypeFor[color](), blue},
		{"plain declared name", token.Value{K: token.String, V: "green"}, reflect.TypeFor[color](), green},
		{"numeric custom name as string", token.Value{K: token.String, V: "1st"}, reflect.TypeFor[rank](), first},
		{"integer", token.Value{K: token.Integer, V: int64(2)}, reflect.TypeFor[color](), blue},
		{"integer undeclared", token.Value{K: token.Integer, V: int64(99)}, reflect.TypeFor[color](), color(99)},
		{"unsigned integer", token.Value{K: token.Integer, V: uint64(200)}, reflect.TypeFor[level](), level(200)},
		{"nullable string", token.Value{K: token.String, V: "green"}, reflect.TypeFor[*color](), ptr(green)},
		{"nullable integer", token.Value{K: token.Integer, V: int64(1)}, reflect.TypeFor[*level](), ptr(level(1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Read(tt.tok, tt.rtype)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnumConverter_Read_Errors(t *testing.T) {
	c, _ := newTestConverter(t)

	tests := []struct {
		name  string
		tok   token.Value
		rtype reflect.Type
		want  error
	}{
		{"unknown name", token.Value{K: token.String, V: "not_a_member"}, reflect.TypeFor[color](), ErrParse},
		{"empty string", token.Value{K: token.String, V: ""}, reflect.TypeFor[color](), ErrParse},
		{"numeric string", token.Value{K: token.String, V: "1"}, reflect.TypeFor[color](), ErrParse},
		{"boolean", token.Value{K: token.Boolean, V: true}, reflect.TypeFor[color](), ErrUnexpectedToken},
		{"array", token.Value{K: token.StartArray}, reflect.TypeFor[color](), ErrUnexpectedToken},
		{"object", token.Value{K: token.StartObject}, reflect.TypeFor[*color](), ErrUnexpectedToken},
		{"float", token.Value{K: token.Float, V: 1.0}, reflect.TypeFor[color](), ErrUnexpectedToken},
		{"overflow", token.Value{K: token.Integer, V: int64(256)}, reflect.TypeFor[level](), ErrTypeMismatch},
		{"negative unsigned", token.Value{K: token.Integer, V: int64(-1)}, reflect.TypeFor[level](), ErrTypeMismatch},
		{"uint past int64", token.Value{K: token.Integer, V: uint64(math.MaxUint64)}, reflect.TypeFor[color](), ErrTypeMismatch},
		{"big integer", token.Value{K: token.Integer, V: new(big.Int).Lsh(big.NewInt(1), 80)}, reflect.TypeFor[color](), ErrTypeMismatch},
		{"not an enum", token.Value{K: token.String, V: "x"}, reflect.TypeFor[plain](), ErrNotEnum},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Read(tt.tok, tt.rtype)
			assert.Nil(t, got)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestEnumConverter_Read_UnexpectedTokenReportsKind(t *testing.T) {
	c, _ := newTestConverter(t)

	_, err := c.Read(token.Value{K: token.Boolean, V: false}, reflect.TypeFor[color]())
	require.Error(t, err)

	var le interface{ Data() map[string]any }
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "Boolean", le.Data()["token"])
}

func TestEnumConverter_Read_ParseWrapsCause(t *testing.T) {
	c, _ := newTestConverter(t)

	_, err := c.Read(token.Value{K: token.String, V: "purple"}, reflect.TypeFor[color]())
	assert.ErrorIs(t, err, ErrParse)
	assert.ErrorIs(t, err, enum.ErrUnknownName)
}

func TestEnumConverter_BoundAlias(t *testing.T) {
	c, types := newTestConverter(t)
	require.NoError(t, types.Bind(reflect.TypeFor[color]().String(), "Green", "emerald"))

	assert.Equal(t, token.Value{K: token.String, V: "emerald"}, write(t, c, green))

	got, err := c.Read(token.Value{K: token.String, V: "Emerald"}, reflect.TypeFor[color]())
	require.NoError(t, err)
	assert.Equal(t, green, got)
}

func TestEnumConverter_CanHandle(t *testing.T) {
	c, _ := newTestConverter(t)

	assert.True(t, c.CanHandle(reflect.TypeFor[color]()))
	assert.True(t, c.CanHandle(reflect.TypeFor[*color]()))
	assert.True(t, c.CanHandle(reflect.TypeFor[wide]()))
	assert.False(t, c.CanHandle(reflect.TypeFor[**color]()))
	assert.False(t, c.CanHandle(reflect.TypeFor[plain]()))
	assert.False(t, c.CanHandle(reflect.TypeFor[int]()))
	assert.False(t, c.CanHandle(reflect.TypeFor[string]()))
	assert.False(t, c.CanHandle(nil))
	assert.Equal(t, "enum", c.Name())
}

func TestEnumConverter_ConcurrentFirstUse(t *testing.T) {
	c, types := newTestConverter(t)
	typ, err := types.Get(reflect.TypeFor[color]())
	require.NoError(t, err)

	const workers = 32
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, m := range typ.Members() {
				v := typ.ValueOf(m).Interface()
				var rec token.Recorder
				if !assert.NoError(t, c.Write(&rec, v)) {
					return
				}
				got, err := c.Read(rec.Token, typ.ReflectType())
				assert.NoError(t, err)
				assert.Equal(t, v, got)
			}
		}()
	}
	wg.Wait()
}

func ptr[T any](v T) *T {
	return &v
}
