package payment

import "errors"

var (
	// ErrSignatureInvalid signals the webhook payload failed signature
	// verification. Security-relevant: nothing is mutated, the caller gets a
	// client error, and the event is never interpreted.
	ErrSignatureInvalid = errors.New("webhook signature verification failed")
)

// ValidationError reports malformed checkout input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
