package booking

import "errors"

// DuplicateBookingMessage is the fixed user-facing message for the
// uniqueness-invariant violation.
const DuplicateBookingMessage = "You have already booked this tour for this date."

var (
	// ErrDuplicateBooking signals the (user, tour, date) uniqueness
	// invariant was violated.
	ErrDuplicateBooking = errors.New(DuplicateBookingMessage)
	// ErrNotFound signals the requested booking does not exist.
	ErrNotFound = errors.New("booking not found")
)

// ValidationError reports malformed booking input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
