// Package mock provides test doubles for the fare search system.
// These are meant for integration tests that need configurable delays,
// errors and fares rather than strict call expectations.
package mock

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/flight-search/cheapest-fly/internal/domain"
)

// FareLookup is a configurable implementation of domain.FareLookup.
type FareLookup struct {
	name  string
	fares map[string]domain.Fare
	fare  domain.Fare
	err   error
	delay time.Duration

	routeDelays map[string]time.Duration

	mu        sync.Mutex
	callCount int
	queries   []domain.FlightQuery
}

// NewFareLookup creates a lookup with the given name that answers with
// SampleFare until configured otherwise.
func NewFareLookup(name string) *FareLookup {
	return &FareLookup{
		name:  name,
		fare:  SampleFare(name, "450.00", "USD"),
		fares:       make(map[string]domain.Fare),
		routeDelays: make(map[string]time.Duration),
	}
}

// WithFare sets the fare returned for every route without its own fare.
func (l *FareLookup) WithFare(fare domain.Fare) *FareLookup {
	l.fare = fare
	return l
}

// WithRouteFare sets the fare returned for one departure airport.
func (l *FareLookup) WithRouteFare(departureFrom string, fare domain.Fare) *FareLookup {
	l.fares[departureFrom] = fare
	return l
}

// WithError makes every lookup fail with err.
func (l *FareLookup) WithError(err error) *FareLookup {
	l.err = err
	return l
}

// WithDelay makes every lookup wait d before answering, or until ctx ends.
func (l *FareLookup) WithDelay(d time.Duration) *FareLookup {
	l.delay = d
	return l
}

// WithRouteDelay overrides the delay for one departure airport.
func (l *FareLookup) WithRouteDelay(departureFrom string, d time.Duration) *FareLookup {
	l.routeDelays[departureFrom] = d
	return l
}

// Name implements domain.FareLookup.
func (l *FareLookup) Name() string {
	return l.name
}

// LookupCheapestFare implements domain.FareLookup.
func (l *FareLookup) LookupCheapestFare(ctx context.Context, q domain.FlightQuery) (domain.Fare, error) {
	l.mu.Lock()
	l.callCount++
	l.queries = append(l.queries, q)
	l.mu.Unlock()

	delay := l.delay
	if d, ok := l.routeDelays[q.DepartureFrom()]; ok {
		delay = d
	}
	if delay > 0 {
		select {
		case <-ctx.Done():
			return domain.Fare{}, ctx.Err()
		case <-time.After(delay):
		}
	}
	if ctx.Err() != nil {
		return domain.Fare{}, ctx.Err()
	}

	if l.err != nil {
		return domain.Fare{}, l.err
	}
	if fare, ok := l.fares[q.DepartureFrom()]; ok {
		return fare, nil
	}
	return l.fare, nil
}

// CallCount returns the number of lookups made.
func (l *FareLookup) CallCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.callCount
}

// Queries returns the queries seen so far, in call order.
func (l *FareLookup) Queries() []domain.FlightQuery {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]domain.FlightQuery(nil), l.queries...)
}

// Reset clears the call history.
func (l *FareLookup) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.callCount = 0
	l.queries = nil
}

var _ domain.FareLookup = (*FareLookup)(nil)

// SampleFare returns a fully populated fare from source.
func SampleFare(source, price, currency string) domain.Fare {
	return domain.Fare{
		Price:         decimal.RequireFromString(price),
		Currency:      currency,
		FlightNumber:  "FR2984",
		DepartureTime: time.Date(2030, 1, 1, 6, 25, 0, 0, time.UTC),
		Source:        source,
	}
}
