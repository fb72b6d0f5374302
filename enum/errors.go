package enum

import "github.com/KOMKZ/go-yogan-codec/errcode"

// ModuleCode enum declaration module
const ModuleCode = 80

const (
	ErrCodeNotEnum        = 1
	ErrCodeInvalidMember  = 2
	ErrCodeAlreadyDefined = 3
	ErrCodeOutOfRange     = 4
	ErrCodeUnknownName    = 5
)

var (
	// ErrNotEnum the type was never declared as an enumerated type
	ErrNotEnum = errcode.Register(errcode.New(
		ModuleCode, ErrCodeNotEnum,
		"enum", "error.enum.not_enum", "type is not an enum",
	))

	// ErrInvalidMember a member declaration or binding is malformed
	ErrInvalidMember = errcode.Register(errcode.New(
		ModuleCode, ErrCodeInvalidMember,
		"enum", "error.enum.invalid_member", "invalid enum member",
	))

	// ErrAlreadyDefined the type has already been declared
	ErrAlreadyDefined = errcode.Register(errcode.New(
		ModuleCode, ErrCodeAlreadyDefined,
		"enum", "error.enum.already_defined", "enum type already defined",
	))

	// ErrOutOfRange an integer does not fit the enum's underlying type
	ErrOutOfRange = errcode.Register(errcode.New(
		ModuleCode, ErrCodeOutOfRange,
		"enum", "error.enum.out_of_range", "value out of range for enum type",
	))

	// ErrUnknownName no declared member carries the name
	ErrUnknownName = errcode.Register(errcode.New(
		ModuleCode, ErrCodeUnknownName,
		"enum", "error.enum.unknown_name", "no enum member with that name",
	))
)
