package memory

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/claimwise/insurance-portal/internal/core/domain"
)

// newValidator reports fields by their json names so a ValidationError reads
// "customerId" rather than "CustomerID".
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// checkShape runs the struct-tag rules and converts the first failure into a
// *domain.ValidationError.
func checkShape(v *validator.Validate, record any) error {
	err := v.Struct(record)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return err
	}
	fe := ve[0]
	return &domain.ValidationError{Field: fieldPath(fe), Reason: reason(fe)}
}

// fieldPath drops the root struct name from the namespace, keeping nested
// paths such as "documents[0].name".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "gtfield":
		return fmt.Sprintf("must be after %s", lowerFirst(fe.Param()))
	case "ltefield":
		return fmt.Sprintf("must not be after %s", lowerFirst(fe.Param()))
	default:
		return fmt.Sprintf("failed validation (%s)", fe.Tag())
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
