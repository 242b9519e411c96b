package types

import "errors"

// ErrValidationFailed is wrapped by every validation error so callers can
// detect the whole class with errors.Is.
var ErrValidationFailed = errors.New("validation failed")

// Validation reasons. Each one wraps ErrValidationFailed.
var (
	ErrEmptyName        = validationReason("name must not be empty")
	ErrInvalidPrice     = validationReason("price must not be negative")
	ErrInvalidRating    = validationReason("rating must be between 0 and 5")
	ErrInvalidImagePath = validationReason("invalid image path")
	ErrDuplicateName    = validationReason("name already exists")
)

// Store operation errors.
var (
	ErrNotFound            = errors.New("record not found")
	ErrInvalidID           = errors.New("invalid record ID")
	ErrIncompatibleVersion = errors.New("incompatible bundle version")
	ErrPersistenceFailed   = errors.New("persistence failed")
)

// reasonError is a validation reason that also matches ErrValidationFailed.
type reasonError struct {
	msg string
}

func validationReason(msg string) error { return &reasonError{msg: msg} }

func (e *reasonError) Error() string { return e.msg }

func (e *reasonError) Unwrap() error { return ErrValidationFailed }
