package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across layers.
var (
	// ErrInvalidRequest is wrapped by every form validation failure.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrProviderTimeout indicates the fare lookup did not answer in time.
	ErrProviderTimeout = errors.New("fare provider timeout")

	// ErrProviderUnavailable indicates the fare lookup could not be reached.
	ErrProviderUnavailable = errors.New("fare provider unavailable")

	// ErrNoFares indicates the provider answered but had nothing to sell for the query.
	ErrNoFares = errors.New("no fares available")
)

// ValidationKind classifies a form validation failure.
type ValidationKind int

const (
	// EmptyField means a field was blank after trimming.
	EmptyField ValidationKind = iota + 1

	// SameAirport means departure and destination name the same airport.
	SameAirport

	// InvalidDate means the date did not parse or lies in the past.
	InvalidDate
)

// String returns a stable, lowercase name for the kind.
func (k ValidationKind) String() string {
	switch k {
	case EmptyField:
		return "empty_field"
	case SameAirport:
		return "same_airport"
	case InvalidDate:
		return "invalid_date"
	default:
		return "unknown"
	}
}

// ValidationError describes why raw form input was refused.
type ValidationError struct {
	Kind    ValidationKind
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(kind ValidationKind, field, message string) *ValidationError {
	return &ValidationError{Kind: kind, Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Unwrap lets errors.Is(err, ErrInvalidRequest) match any validation failure.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidRequest
}

// AsValidationError extracts a *ValidationError from err, if there is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

// ProviderError wraps an error returned by a fare lookup collaborator.
type ProviderError struct {
	Provider  string
	Err       error
	Retryable bool
}

// NewProviderError creates a non-retryable ProviderError.
func NewProviderError(provider string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Err: err}
}

// NewRetryableProviderError creates a ProviderError that the retry policy may repeat.
func NewRetryableProviderError(provider string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Err: err, Retryable: true}
}

// NewProviderTimeoutError creates a ProviderError wrapping ErrProviderTimeout.
func NewProviderTimeoutError(provider string) *ProviderError {
	return NewProviderError(provider, ErrProviderTimeout)
}

// NewProviderUnavailableError creates a retryable ProviderError wrapping ErrProviderUnavailable.
func NewProviderUnavailableError(provider string, cause error) *ProviderError {
	if cause == nil {
		return NewRetryableProviderError(provider, ErrProviderUnavailable)
	}
	return NewRetryableProviderError(provider, fmt.Errorf("%w: %v", ErrProviderUnavailable, cause))
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// RejectedError is returned when the fare service refused the query outright.
// Reason is safe to show to a user.
type RejectedError struct {
	Reason string
}

// NewRejectedError creates a RejectedError with the given reason.
func NewRejectedError(reason string) *RejectedError {
	return &RejectedError{Reason: reason}
}

func (e *RejectedError) Error() string {
	return "rejected: " + e.Reason
}

// IsInvalidRequest reports whether err is a validation failure.
func IsInvalidRequest(err error) bool {
	return errors.Is(err, ErrInvalidRequest)
}

// IsProviderTimeout reports whether err is a provider timeout.
func IsProviderTimeout(err error) bool {
	return errors.Is(err, ErrProviderTimeout)
}

// IsProviderUnavailable reports whether err says the provider could not be reached.
func IsProviderUnavailable(err error) bool {
	return errors.Is(err, ErrProviderUnavailable)
}

// IsRetryable reports whether err was marked retryable by its provider.
func IsRetryable(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Retryable
	}
	return false
}
