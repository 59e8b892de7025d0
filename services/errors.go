package services

import (
	"errors"
	"fmt"
)

// ErrInsufficientInventory is returned by Reserve when any single night of
// the requested range cannot cover the requested quantity. The whole
// operation fails; no night is ever left partially decremented.
var ErrInsufficientInventory = errors.New("insufficient inventory for requested range")

// ErrRoomTypeNotFound is returned when the referenced room type does not exist.
var ErrRoomTypeNotFound = errors.New("room type not found")

// ErrBookingNotFound is returned when a booking lookup misses.
var ErrBookingNotFound = errors.New("booking not found")

// ValidationError is a failed booking precondition. Field names the
// user-correctable input; no store access has happened by the time one is
// raised.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

// AsValidationError unwraps err to a *ValidationError, or nil.
func AsValidationError(err error) *ValidationError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
