package serializer

import "github.com/KOMKZ/go-yogan-codec/errcode"

// ModuleCode serializer module
const ModuleCode = 83

var (
	// ErrUnsupportedFormat the configured host format is unknown
	ErrUnsupportedFormat = errcode.Register(errcode.New(
		ModuleCode, 1, "serializer", "error.serializer.unsupported_format", "unsupported format",
	))

	// ErrSerialize writing a value failed
	ErrSerialize = errcode.Register(errcode.New(
		ModuleCode, 2, "serializer", "error.serializer.serialize", "serialize failed",
	))

	// ErrDeserialize reading a value failed
	ErrDeserialize = errcode.Register(errcode.New(
		ModuleCode, 3, "serializer", "error.serializer.deserialize", "deserialize failed",
	))

	// ErrConfigInvalid the codec configuration section is invalid
	ErrConfigInvalid = errcode.Register(errcode.New(
		ModuleCode, 4, "serializer", "error.serializer.config_invalid", "invalid codec configuration",
	))
)
