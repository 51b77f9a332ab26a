package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidation(t *testing.T) {
	ve := &ValidationError{Field: "body"}
	assert.True(t, IsValidation(ve), "expected ValidationError to be detected")
	assert.True(t, IsValidation(fmt.Errorf("create message: %w", ve)), "expected wrapped ValidationError to be detected")
	assert.False(t, IsValidation(errors.New("boom")), "expected unrelated error not to be detected")
	assert.False(t, IsValidation(ErrStoreUnavailable), "expected store error not to be detected as validation")
}

func TestValidationErrorMessage(t *testing.T) {
	assert.EqualError(t, &ValidationError{Field: "sender id"}, "invalid sender id")
}

func TestErrStoreUnavailableWrapping(t *testing.T) {
	err := fmt.Errorf("%w: %s", ErrStoreUnavailable, "connection refused")
	assert.ErrorIs(t, err, ErrStoreUnavailable, "expected wrapped sentinel to match")
}
