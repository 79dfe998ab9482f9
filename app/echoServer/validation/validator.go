package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	return &Validator{v: validator.New()}
}

func (v *Validator) Validate(i interface{}) error {
	return v.v.Struct(i)
}

// Fields flattens validator errors into a field -> reason map for the
// 400 response body.
func Fields(err error) map[string]string {
	out := map[string]string{}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		out["body"] = "invalid payload"
		return out
	}
	for _, fe := range verrs {
		name := strings.ToLower(fe.Field())
		out[name] = reason(name, fe)
	}
	return out
}

func reason(name string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "email":
		return fmt.Sprintf("%s must be a valid email", name)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", name, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be %s or more", name, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be %s or less", name, fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must match %s", name, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", name)
	}
}
