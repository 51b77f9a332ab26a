package database

import (
	"errors"
	"fmt"
)

// ErrStoreUnavailable wraps any failure to reach the backing store.
var ErrStoreUnavailable = errors.New("store unavailable")

// ValidationError reports a required field that was empty or malformed.
// The event that produced it never reaches the store.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s", e.Field)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
