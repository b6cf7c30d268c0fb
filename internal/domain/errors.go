package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidQuantity is returned when a line is added with a delta below 1.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	// ErrMissingCustomer blocks submission until a customer is selected.
	ErrMissingCustomer = errors.New("select a customer before submitting the order")
	// ErrEmptyCart blocks submission of an order without lines.
	ErrEmptyCart = errors.New("add at least one product before submitting the order")
	// ErrAlreadySubmitting rejects a second submit while one is in flight.
	ErrAlreadySubmitting = errors.New("order submission already in progress")
	ErrWrongStep         = errors.New("operation not available on the current step")
	ErrWizardClosed      = errors.New("order wizard is closed")
	ErrNotFound          = errors.New("not found")
	ErrUnknownField      = errors.New("unknown adjustment field")
	ErrSessionNotFound   = errors.New("wizard session not found")
)

// GenericSubmissionMessage is shown when the backend gives no usable message.
const GenericSubmissionMessage = "failed to create order"

// BackendError is a non-2xx answer from the orders API.
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("orders API returned status %d", e.StatusCode)
	}
	return e.Message
}

// SubmissionError is a failed createOrder call. Message is what the user sees:
// the backend's message when it sent one, the generic fallback otherwise.
type SubmissionError struct {
	Message string
	Err     error
}

// NewSubmissionError converts a collaborator failure into a SubmissionError.
func NewSubmissionError(err error) *SubmissionError {
	msg := GenericSubmissionMessage
	var be *BackendError
	if errors.As(err, &be) && be.Message != "" {
		msg = be.Message
	}
	return &SubmissionError{Message: msg, Err: err}
}

func (e *SubmissionError) Error() string { return e.Message }

func (e *SubmissionError) Unwrap() error { return e.Err }

// IsValidation reports whether err blocks submission locally.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingCustomer) || errors.Is(err, ErrEmptyCart)
}
