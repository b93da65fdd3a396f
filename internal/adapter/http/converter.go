package http

import (
	"github.com/flight-search/cheapest-fly/internal/domain"
)

// departureLayout keeps the provider's wall clock time without an offset.
const departureLayout = "2006-01-02T15:04:05"

// ToCheapestFareResponse converts a query and its fare to the response DTO.
func ToCheapestFareResponse(searchID string, query domain.FlightQuery, fare domain.Fare) *CheapestFareResponse {
	return &CheapestFareResponse{
		SearchID: searchID,
		Query:    ToQueryDTO(query),
		Fare:     ToFareDTO(fare),
	}
}

// ToQueryDTO converts a domain FlightQuery to a QueryDTO.
func ToQueryDTO(query domain.FlightQuery) QueryDTO {
	return QueryDTO{
		DepartureFrom: query.DepartureFrom(),
		DepartureTo:   query.DepartureTo(),
		Date:          query.Date(),
	}
}

// ToFareDTO converts a domain Fare to a FareDTO.
func ToFareDTO(fare domain.Fare) FareDTO {
	dto := FareDTO{
		Price:        fare.Price.StringFixed(2),
		Currency:     fare.Currency,
		Display:      fare.Display(),
		FlightNumber: fare.FlightNumber,
		Source:       fare.Source,
	}
	if !fare.DepartureTime.IsZero() {
		dto.DepartureTime = fare.DepartureTime.Format(departureLayout)
	}
	return dto
}
