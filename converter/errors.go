package converter

import (
	"github.com/KOMKZ/go-yogan-codec/enum"
	"github.com/KOMKZ/go-yogan-codec/errcode"
)

// ModuleCode converter module
const ModuleCode = 82

const (
	ErrCodeTypeMismatch    = 1
	ErrCodeParse           = 2
	ErrCodeUnexpectedToken = 3
	ErrCodeNoConverter     = 4
)

var (
	// ErrNotEnum the requested type is not a declared enum
	ErrNotEnum = enum.ErrNotEnum

	// ErrTypeMismatch null for a non-nullable target, or an integer the target cannot hold
	ErrTypeMismatch = errcode.Register(errcode.New(
		ModuleCode, ErrCodeTypeMismatch,
		"converter", "error.converter.type_mismatch", "token does not fit the target type",
	))

	// ErrParse a string matches neither a display name nor a declared name
	ErrParse = errcode.Register(errcode.New(
		ModuleCode, ErrCodeParse,
		"converter", "error.converter.parse", "cannot parse enum value",
	))

	// ErrUnexpectedToken the token kind cannot represent an enum value
	ErrUnexpectedToken = errcode.Register(errcode.New(
		ModuleCode, ErrCodeUnexpectedToken,
		"converter", "error.converter.unexpected_token", "unexpected token",
	))

	// ErrNoConverter no registered converter handles the type
	ErrNoConverter = errcode.Register(errcode.New(
		ModuleCode, ErrCodeNoConverter,
		"converter", "error.converter.no_converter", "no converter for type",
	))
)
