// Package validator turns ozzo-validation failures into LayeredErrors
package validator

import (
	"errors"

	"github.com/KOMKZ/go-yogan-codec/errcode"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrValidation generic validation failure, used when the caller has no more specific code
var ErrValidation = errcode.Register(errcode.New(
	1, 1010,
	"common", "error.common.validation_failed", "validation failed",
))

// Validatable is implemented by anything with ozzo rules
type Validatable interface {
	Validate() error
}

// Validate runs v.Validate and reports field failures as ErrValidation
func Validate(v Validatable) error {
	return ValidateAs(v, ErrValidation)
}

// ValidateAs runs v.Validate and reports field failures as base, with the failures under data key "fields".
// Errors that are not field failures are returned unchanged.
func ValidateAs(v Validatable, base *errcode.LayeredError) error {
	err := v.Validate()
	if err == nil {
		return nil
	}

	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		return ConvertValidationError(fieldErrs, base)
	}
	return err
}

// WrapAs reports any error as base: field failures go under data key "fields", anything else becomes the cause
func WrapAs(err error, base *errcode.LayeredError) error {
	if err == nil {
		return nil
	}

	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		return ConvertValidationError(fieldErrs, base)
	}
	return base.Wrap(err)
}

// ConvertValidationError flattens field failures into base
func ConvertValidationError(fieldErrs validation.Errors, base *errcode.LayeredError) *errcode.LayeredError {
	fields := make(map[string]string, len(fieldErrs))
	for field, err := range fieldErrs {
		if err != nil {
			fields[field] = err.Error()
		}
	}
	return base.WithData("fields", fields).Wrap(fieldErrs)
}
