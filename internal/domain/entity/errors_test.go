package entity

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := &ValidationError{Field: "language", Message: "unsupported language \"Klingon\""}

	assert.Equal(t, `invalid language: unsupported language "Klingon"`, err.Error())
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, fmt.Errorf("simplify: %w", err), ErrInvalidInput)
	assert.False(t, errors.Is(err, ErrNotFound))
}
