package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=fare.go -destination=mock_fare.go -package=domain

// Fare is the cheapest price a provider offers for a FlightQuery.
type Fare struct {
	// Price is the fare amount in Currency units
	Price decimal.Decimal `json:"price"`

	// Currency is the ISO 4217 currency code (e.g., "USD", "EUR")
	Currency string `json:"currency"`

	// FlightNumber is the operating flight number when the provider reports one
	FlightNumber string `json:"flightNumber,omitempty"`

	// DepartureTime is the scheduled departure when the provider reports one
	DepartureTime time.Time `json:"departureTime,omitzero"`

	// Source names the provider that quoted this fare
	Source string `json:"source,omitempty"`
}

// Display renders the price and currency, e.g. "450.00 USD".
func (f Fare) Display() string {
	return f.Price.StringFixed(2) + " " + f.Currency
}

// FareLookup is the external collaborator that quotes the cheapest fare.
// Implementations are network-backed and may be metered; callers must not
// retry them speculatively.
type FareLookup interface {
	// Name returns the provider identifier used in logs and errors.
	Name() string

	// LookupCheapestFare returns the cheapest fare for the query.
	LookupCheapestFare(ctx context.Context, query FlightQuery) (Fare, error)
}
