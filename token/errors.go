package token

import "github.com/KOMKZ/go-yogan-codec/errcode"

// ModuleCode token adapter module
const ModuleCode = 84

const (
	ErrCodeTrailingData = 1
)

// ErrTrailingData the document holds more than the single value that was read
var ErrTrailingData = errcode.Register(errcode.New(
	ModuleCode, ErrCodeTrailingData,
	"token", "error.token.trailing_data", "unexpected data after value",
))
