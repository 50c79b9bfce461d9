package leads

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingRequiredFields is returned by BookingRequest.Validate when any
	// of the three mandatory intake fields is absent. The text is part of the
	// public API contract and is echoed to clients verbatim.
	ErrMissingRequiredFields = errors.New("Missing required fields: fullName, phone, and serviceType are required")

	// ErrLeadNotFound is returned when a lead is not found
	ErrLeadNotFound = errors.New("lead not found")

	// ErrDuplicateReviewToken is returned when a review token collides with an
	// existing record. With 256 bits of entropy this should never happen.
	ErrDuplicateReviewToken = errors.New("review token already exists")
)

// ValidationError reports a schema-level violation caught at the persistence
// boundary. Handlers map it to a 400 response; the field detail stays in the
// server logs.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
