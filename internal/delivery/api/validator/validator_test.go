package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"required"`
}

func TestValidator_ReportsJSONFieldNames(t *testing.T) {
	v := New()

	err := v.Validate(&signupRequest{Email: "not-an-email"})
	require.Error(t, err)

	fields := FieldErrors(err)
	assert.Equal(t, "email", fields["signupRequest.email"])
	assert.Equal(t, "required", fields["signupRequest.full_name"])
}

func TestValidator_AcceptsValidInput(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&signupRequest{Email: "mei@campus.test", FullName: "Mei Lin"}))
	assert.Nil(t, FieldErrors(nil))
}
