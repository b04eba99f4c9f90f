package validation

import (
	stderrors "errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// New returns a validator that reports fields by their JSON names
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// Fields maps each failing field to the rule it broke. It returns nil for
// errors that did not come from the validator.
func Fields(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !stderrors.As(err, &validationErrors) {
		return nil
	}

	fields := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		fields[fe.Namespace()] = fe.Tag()
	}
	return fields
}

// IsNotEmpty checks if string is not empty after trimming
func IsNotEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// TrimAndValidate trims string and validates it's not empty
func TrimAndValidate(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	return trimmed, trimmed != ""
}
