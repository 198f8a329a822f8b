package services

import (
	"errors"
	"fmt"

	"github.com/fyb-funds/fund-service/database"
)

// Service error kinds. Handlers map these onto HTTP statuses with errors.Is;
// anything unwrapped to none of them is treated as a persistence failure.
var (
	// ErrNotFound means the addressed entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation means the input violates a domain rule.
	ErrValidation = errors.New("validation failed")

	// ErrConflict means the operation is valid but conflicts with current
	// state, such as an illegal order status transition.
	ErrConflict = errors.New("conflict")
)

// notFoundErr wraps ErrNotFound with the entity kind and id.
func notFoundErr(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
}

// validationErr wraps ErrValidation with the underlying cause.
func validationErr(err error) error {
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

// storeErr translates store errors: a missing record becomes ErrNotFound for
// the given entity, everything else is wrapped as-is.
func storeErr(err error, kind, id string) error {
	if errors.Is(err, database.ErrRecordNotFound) {
		return notFoundErr(kind, id)
	}
	return err
}
