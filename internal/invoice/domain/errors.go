package domain

import "errors"

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidStatus   = errors.New("invalid_status")
	ErrNotFound        = errors.New("not_found")
)

// ValidationFailed carries the structured validation result for a rejected
// draft. It is an error so the save pipeline can surface it unchanged.
type ValidationFailed struct {
	Result ValidationResult
}

func (e *ValidationFailed) Error() string { return "invoice validation failed" }
