package validation

import (
	"testing"

	"github.com/saulo-duarte/lingua-lambda/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Language string `json:"language" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Name     string `json:"name" validate:"max=3"`
}

func TestStruct(t *testing.T) {
	require.NoError(t, Struct(sample{Language: "French"}))

	err := Struct(sample{Email: "nope", Name: "toolong"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Contains(t, err.Error(), "language is required")
	assert.Contains(t, err.Error(), "email must be a valid email")
	assert.Contains(t, err.Error(), "name must be at most 3 characters")
}
