package http

import (
	"errors"

	"github.com/flight-search/cheapest-fly/internal/domain"
)

// CheapestFareRequest represents the request body for a cheapest fare lookup.
type CheapestFareRequest struct {
	// DepartureFrom is the departure airport, e.g. "JFK"
	DepartureFrom string `json:"departureFrom" example:"JFK"`

	// DepartureTo is the destination airport, e.g. "LAX"
	DepartureTo string `json:"departureTo" example:"LAX"`

	// Date is the departure date in YYYY-MM-DD format, today or later
	Date string `json:"date" example:"2030-01-01"`
}

// QueryValidator turns raw form text into a validated query.
type QueryValidator interface {
	Validate(rawDeparture, rawDestination, rawDate string) (domain.FlightQuery, error)
}

// ValidationError represents a field-level validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// ValidationErrors holds the validation errors of one request.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}
	return v.Errors[0].Message
}

// Add adds a validation error.
func (v *ValidationErrors) Add(field, kind, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Kind:    kind,
		Message: message,
	})
}

// ToMap converts validation errors to a map for API response.
func (v *ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v.Errors))
	for _, e := range v.Errors {
		result[e.Field] = e.Message
	}
	return result
}

// ToQuery validates the request with v. A domain validation failure comes
// back as *ValidationErrors.
func (r *CheapestFareRequest) ToQuery(v QueryValidator) (domain.FlightQuery, error) {
	query, err := v.Validate(r.DepartureFrom, r.DepartureTo, r.Date)
	if err == nil {
		return query, nil
	}

	errs := &ValidationErrors{}
	if verr, ok := domain.AsValidationError(err); ok {
		errs.Add(verr.Field, verr.Kind.String(), verr.Message)
		return domain.FlightQuery{}, errs
	}
	if errors.Is(err, domain.ErrInvalidRequest) {
		errs.Add("request", "", err.Error())
		return domain.FlightQuery{}, errs
	}
	return domain.FlightQuery{}, err
}
