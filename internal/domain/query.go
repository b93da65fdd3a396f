// Package domain contains the core entities and rules of the cheapest fare finder.
// Nothing here performs I/O; adapters and use cases build on these types.
package domain

import (
	"strings"
	"time"
)

// DateLayout is the only accepted travel date format.
const DateLayout = "2006-01-02"

// Form field names, used in validation errors and API details.
const (
	FieldDepartureFrom = "departureFrom"
	FieldDepartureTo   = "departureTo"
	FieldDate          = "date"
)

// FlightQuery is a validated search request.
// It can only be built by ValidateForm and cannot be changed afterwards.
type FlightQuery struct {
	departureFrom string
	departureTo   string
	date          time.Time
}

// DepartureFrom returns the upper-cased departure airport.
func (q FlightQuery) DepartureFrom() string { return q.departureFrom }

// DepartureTo returns the upper-cased destination airport.
func (q FlightQuery) DepartureTo() string { return q.departureTo }

// Date returns the travel date as YYYY-MM-DD.
func (q FlightQuery) Date() string { return q.date.Format(DateLayout) }

// Day returns the travel date at midnight in the location it was validated in.
func (q FlightQuery) Day() time.Time { return q.date }

// IsZero reports whether q was never produced by ValidateForm.
func (q FlightQuery) IsZero() bool { return q.departureFrom == "" }

// String renders the query as "FROM→TO on DATE".
func (q FlightQuery) String() string {
	return q.departureFrom + "→" + q.departureTo + " on " + q.Date()
}

// ValidateForm turns raw form text into a FlightQuery.
//
// Fields are trimmed and checked in order: departure, destination, date.
// Airports compare case-insensitively. The date must be a YYYY-MM-DD
// calendar date no earlier than today's calendar day; the date is
// interpreted in today's location.
func ValidateForm(rawDeparture, rawDestination, rawDate string, today time.Time) (FlightQuery, error) {
	from := strings.TrimSpace(rawDeparture)
	to := strings.TrimSpace(rawDestination)
	date := strings.TrimSpace(rawDate)

	if from == "" {
		return FlightQuery{}, NewValidationError(EmptyField, FieldDepartureFrom, "departure airport is required")
	}
	if to == "" {
		return FlightQuery{}, NewValidationError(EmptyField, FieldDepartureTo, "destination airport is required")
	}
	if date == "" {
		return FlightQuery{}, NewValidationError(EmptyField, FieldDate, "travel date is required")
	}

	if strings.EqualFold(from, to) {
		return FlightQuery{}, NewValidationError(SameAirport, FieldDepartureTo, "departure and destination must be different")
	}

	day, err := time.ParseInLocation(DateLayout, date, today.Location())
	if err != nil {
		return FlightQuery{}, NewValidationError(InvalidDate, FieldDate, "date must be a calendar date in YYYY-MM-DD format")
	}

	startOfToday := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	if day.Before(startOfToday) {
		return FlightQuery{}, NewValidationError(InvalidDate, FieldDate, "date must not be in the past")
	}

	return FlightQuery{
		departureFrom: strings.ToUpper(from),
		departureTo:   strings.ToUpper(to),
		date:          day,
	}, nil
}
