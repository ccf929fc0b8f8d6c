package errors

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FromValidation turns a validator/v10 failure into an InvalidRequest naming the first bad field.
func FromValidation(err error) *Error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return Invalid("invalid request")
	}

	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return Invalid(field + " is required")
	case "oneof":
		return Invalid(field + " must be one of [" + fe.Param() + "]")
	case "max":
		return Invalid(field + " is too long")
	case "gte", "lte", "min":
		return Invalid(field + " is out of range")
	}
	return Invalid(field + " is invalid")
}
