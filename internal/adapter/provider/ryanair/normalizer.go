package ryanair

import (
	"fmt"
	"strings"
	"time"

	"github.com/flight-search/cheapest-fly/internal/domain"
)

// normalize picks the cheapest usable fare from the response. Prices are
// only compared within the currency of the first usable fare; fares quoted
// in another currency are skipped.
func normalize(fares []RyanairFare) (domain.Fare, error) {
	var (
		best  domain.Fare
		found bool
	)

	for _, f := range fares {
		fare, err := normalizeFare(f)
		if err != nil {
			// Skip fares that cannot be normalized
			continue
		}
		if found && fare.Currency != best.Currency {
			continue
		}
		if !found || fare.Price.LessThan(best.Price) {
			best = fare
			found = true
		}
	}

	if !found {
		return domain.Fare{}, domain.NewProviderError(ProviderName, domain.ErrNoFares)
	}
	return best, nil
}

// normalizeFare converts a single Ryanair fare to a domain Fare.
func normalizeFare(f RyanairFare) (domain.Fare, error) {
	out := f.Outbound

	if !out.Price.Value.IsPositive() {
		return domain.Fare{}, fmt.Errorf("non-positive price %s", out.Price.Value)
	}
	currency := strings.ToUpper(strings.TrimSpace(out.Price.CurrencyCode))
	if currency == "" {
		return domain.Fare{}, fmt.Errorf("missing currency")
	}

	var departure time.Time
	if out.DepartureDate != "" {
		t, err := parseDateTime(out.DepartureDate)
		if err != nil {
			return domain.Fare{}, fmt.Errorf("failed to parse departure time: %w", err)
		}
		departure = t
	}

	return domain.Fare{
		Price:         out.Price.Value,
		Currency:      currency,
		FlightNumber:  strings.TrimSpace(out.FlightNumber),
		DepartureTime: departure,
		Source:        ProviderName,
	}, nil
}

// parseDateTime parses the API's datetime. Departure times come without an
// offset and are local to the departure airport.
func parseDateTime(dateTime string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, dateTime)
	if err == nil {
		return t, nil
	}

	t, err = time.Parse("2006-01-02T15:04:05", dateTime)
	if err == nil {
		return t, nil
	}

	t, err = time.Parse("2006-01-02T15:04", dateTime)
	if err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("unable to parse datetime %q", dateTime)
}
