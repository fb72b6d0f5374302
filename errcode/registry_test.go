package errcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRegistry_Register registering distinct codes
func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register(New(80, 1, "enum", "error.enum.not_enum", "not an enum")))
	require.NoError(t, r.Register(New(82, 1, "converter", "error.converter.type_mismatch", "type mismatch")))

	assert.Equal(t, 2, r.Count())
	key, ok := r.Lookup(800001)
	assert.True(t, ok)
	assert.Equal(t, "enum:error.enum.not_enum", key)
}

// TestRegistry_Register_Duplicate same code and key is idempotent
func TestRegistry_Register_Duplicate(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register(New(80, 1, "enum", "error.enum.not_enum", "not an enum")))
	require.NoError(t, r.Register(New(80, 1, "enum", "error.enum.not_enum", "different text is fine")))

	assert.Equal(t, 1, r.Count())
}

// TestRegistry_Register_Conflict same code, different key
func TestRegistry_Register_Conflict(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register(New(80, 1, "enum", "error.enum.not_enum", "not an enum")))
	err := r.Register(New(80, 1, "enum", "error.enum.other", "other"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "code 800001")
}

// TestRegistry_GetAll returns a copy
func TestRegistry_GetAll(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(New(80, 1, "enum", "error.enum.not_enum", "not an enum")))

	all := r.GetAll()
	all[999999] = "tampered"

	assert.Equal(t, 1, r.Count())
}

// TestRegister_GlobalPanicsOnConflict global registration fails fast
func TestRegister_GlobalPanicsOnConflict(t *testing.T) {
	Register(New(99, 9901, "test", "error.test.a", "a"))
	assert.Panics(t, func() {
		Register(New(99, 9901, "test", "error.test.b", "b"))
	})
	_, ok := GetAllRegisteredCodes()[999901]
	assert.True(t, ok)
}
