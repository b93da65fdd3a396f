package ryanair

import "github.com/shopspring/decimal"

// FaresResponse is the body of the oneWayFares endpoint.
type FaresResponse struct {
	Fares []RyanairFare `json:"fares"`
	Size  int           `json:"size"`
}

// RyanairFare is one entry of the fares list.
type RyanairFare struct {
	Outbound RyanairFlight `json:"outbound"`
}

// RyanairFlight describes the outbound leg of a fare.
type RyanairFlight struct {
	DepartureAirport RyanairAirport `json:"departureAirport"`
	ArrivalAirport   RyanairAirport `json:"arrivalAirport"`
	DepartureDate    string         `json:"departureDate"`
	ArrivalDate      string         `json:"arrivalDate"`
	Price            RyanairPrice   `json:"price"`
	FlightNumber     string         `json:"flightNumber"`
}

type RyanairAirport struct {
	IataCode string `json:"iataCode"`
	Name     string `json:"name"`
}

type RyanairPrice struct {
	Value        decimal.Decimal `json:"value"`
	CurrencyCode string          `json:"currencyCode"`
}

// errorResponse is returned by the API on 4xx.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
