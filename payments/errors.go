package payments

import (
	"errors"
	"fmt"
)

// Kind classifies a payment failure so callers can branch without inspecting messages
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConfiguration
	KindUpstream
	KindInvalidSignature
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConfiguration:
		return "configuration"
	case KindUpstream:
		return "upstream"
	case KindInvalidSignature:
		return "invalid_signature"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotConfigured      = errors.New("payments not configured")
	ErrInvalidSignature   = errors.New("invalid signature")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrPaymentConflict    = errors.New("order already settled by another payment")
	ErrConcurrentUpdate   = errors.New("order changed concurrently")
	ErrPaymentUnavailable = errors.New("payment error")
)

// Error is the error type returned by Controller operations
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Err.Error() != e.Message {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func validationError(err error) *Error {
	return newError(KindValidation, "Invalid input", fmt.Errorf("%w: %v", ErrInvalidInput, err))
}

func configurationError() *Error {
	return newError(KindConfiguration, "Payments not configured", ErrNotConfigured)
}

func upstreamError(description string, err error) *Error {
	if description == "" {
		description = ErrPaymentUnavailable.Error()
	}
	return newError(KindUpstream, description, err)
}

// KindOf returns the Kind carried by err, or KindInternal for foreign errors
func KindOf(err error) Kind {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind
	}
	return KindInternal
}
