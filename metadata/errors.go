package metadata

import "github.com/KOMKZ/go-yogan-codec/errcode"

// ModuleCode metadata cache module
const ModuleCode = 81

const (
	ErrCodeDuplicateName = 1
	ErrCodeUnknownPolicy = 2
)

var (
	// ErrDuplicateName two members of one type share a display name
	ErrDuplicateName = errcode.Register(errcode.New(
		ModuleCode, ErrCodeDuplicateName,
		"metadata", "error.metadata.duplicate_name", "duplicate enum display name",
	))

	// ErrUnknownPolicy the duplicate policy string is not recognized
	ErrUnknownPolicy = errcode.Register(errcode.New(
		ModuleCode, ErrCodeUnknownPolicy,
		"metadata", "error.metadata.unknown_policy", "unknown duplicate policy",
	))
)
