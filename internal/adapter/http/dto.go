package http

// CheapestFareResponse is the body of a successful cheapest fare lookup.
type CheapestFareResponse struct {
	// SearchID identifies this lookup in logs
	SearchID string `json:"searchId" example:"0b6f3a8e-6f2c-4c4e-9d0f-8a1b2c3d4e5f"`

	Query QueryDTO `json:"query"`
	Fare  FareDTO  `json:"fare"`
}

// QueryDTO echoes the normalized query.
type QueryDTO struct {
	DepartureFrom string `json:"departureFrom" example:"JFK"`
	DepartureTo   string `json:"departureTo" example:"LAX"`
	Date          string `json:"date" example:"2030-01-01"`
}

// FareDTO is the cheapest fare found.
type FareDTO struct {
	// Price is a decimal string with two fraction digits
	Price         string `json:"price" example:"450.00"`
	Currency      string `json:"currency" example:"USD"`
	Display       string `json:"display" example:"450.00 USD"`
	FlightNumber  string `json:"flightNumber,omitempty" example:"FR2984"`
	DepartureTime string `json:"departureTime,omitempty" example:"2030-01-01T06:25:00"`
	Source        string `json:"source,omitempty" example:"ryanair"`
}
