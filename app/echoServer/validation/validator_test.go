package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

func TestFields(t *testing.T) {
	v := validator.New()

	err := v.Struct(payload{Email: "not-an-email", Password: "123"})
	require.Error(t, err)

	fields := Fields(err)
	require.Equal(t, "name is required", fields["name"])
	require.Equal(t, "email must be a valid email", fields["email"])
	require.Equal(t, "password must be at least 6 characters", fields["password"])
}

func TestFields_NonValidatorError(t *testing.T) {
	fields := Fields(assertErr{})
	require.Equal(t, "invalid payload", fields["body"])
}

type assertErr struct{}

func (assertErr) Error() string { return "boom" }
