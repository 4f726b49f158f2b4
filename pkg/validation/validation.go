// Package validation checks request payloads before they are sent to the
// backend and turns failures into field-level validation errors.
package validation

import (
	"reflect"
	"strings"
	"sync"

	apperrors "github.com/careerconnect/connect-client/pkg/errors"
	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(fieldName)
	})
	return validate
}

// fieldName reports fields by their wire name so messages match the form
func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// Struct validates v's `validate` tags. The first failing field is
// returned as an *errors.FieldError, which matches errors.ErrValidation.
func Struct(v any) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !apperrors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return apperrors.InvalidInputError("payload", "is invalid")
	}

	fe := fieldErrors[0]
	return apperrors.InvalidInputError(fe.Field(), Reason(fe))
}

// Reason renders a validator failure as the tail of a sentence
// starting with the field name.
func Reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must not exceed " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "nefield":
		return "must differ from " + fe.Param()
	case "url":
		return "must be a valid URL"
	default:
		return "is invalid"
	}
}
