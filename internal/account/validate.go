package account

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NewValidator returns a validator that reports fields by their JSON names so
// error payloads match the wire format.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldErrors converts a validator error into the field→messages shape shared
// by every validation failure response. Returns nil when err is nil.
func FieldErrors(err error) *ValidationError {
	if err == nil {
		return nil
	}

	verr := &ValidationError{}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		verr.Add("request", "invalid request payload")
		return verr
	}

	for _, fe := range fieldErrs {
		verr.Add(fe.Field(), fieldMessage(fe))
	}
	return verr
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("the %s field is required", fe.Field())
	case "email":
		return fmt.Sprintf("the %s must be a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("the %s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("the %s may not be greater than %s characters", fe.Field(), fe.Param())
	case "eqfield":
		return fmt.Sprintf("the %s confirmation does not match", strings.TrimSuffix(fe.Field(), "_confirmation"))
	case "len":
		return fmt.Sprintf("the %s must be exactly %s characters", fe.Field(), fe.Param())
	case "numeric":
		return fmt.Sprintf("the %s must contain only digits", fe.Field())
	default:
		return fmt.Sprintf("the %s field is invalid", fe.Field())
	}
}
