package handler

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/claimwise/insurance-portal/internal/core/domain"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
// Field names in errors are the json names the client sent.
func NewValidator() *echoValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface. The first failing field is
// reported as a *domain.ValidationError.
func (ev *echoValidator) Validate(i any) error {
	err := ev.v.Struct(i)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return fieldError(ve[0])
	}
	return err
}

func fieldError(fe validator.FieldError) *domain.ValidationError {
	field := fe.Field()
	if ns := fe.Namespace(); strings.Contains(ns, ".") {
		// Drop the root struct name: "batchTransitionRequest.actions[0].claimId".
		_, field, _ = strings.Cut(ns, ".")
	}
	switch fe.Tag() {
	case "required":
		return domain.NewValidationError(field, "is required")
	case "email":
		return domain.NewValidationError(field, "must be a valid email")
	case "gt":
		return domain.NewValidationError(field, "must be greater than %s", fe.Param())
	case "min":
		return domain.NewValidationError(field, "must have at least %s entries", fe.Param())
	case "max":
		return domain.NewValidationError(field, "must have at most %s entries", fe.Param())
	case "oneof":
		return domain.NewValidationError(field, "must be one of: %s", fe.Param())
	default:
		return domain.NewValidationError(field, "failed validation (%s)", fe.Tag())
	}
}
