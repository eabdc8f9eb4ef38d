package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupRequest struct {
	Email  string   `json:"email" validate:"required,email"`
	Role   string   `json:"role" validate:"required,oneof=doctor nurse"`
	Phone  string   `json:"phone" validate:"required,numeric,min=7,max=20"`
	Nurses []string `json:"nurses" validate:"dive,uuid"`
}

func TestFormatValidationErrors(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&signupRequest{
		Email:  "not-an-email",
		Role:   "admin",
		Phone:  "12ab",
		Nurses: []string{"x"},
	})
	require.Error(t, err)

	errs := v.FormatValidationErrors(err)
	assert.Equal(t, "email must be a valid email address", errs["email"])
	assert.Equal(t, "role must be one of: doctor, nurse", errs["role"])
	assert.Equal(t, "phone must contain digits only", errs["phone"])
	assert.Equal(t, "nurses[0] must be a valid UUID", errs["nurses[0]"])
}

func TestValidate_OK(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, v.Validate(&signupRequest{Email: "a@b.co", Role: "nurse", Phone: "0123456789"}))
}
