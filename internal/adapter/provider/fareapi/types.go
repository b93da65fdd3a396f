package fareapi

// cheapestRequest mirrors the server's request body.
type cheapestRequest struct {
	DepartureFrom string `json:"departureFrom"`
	DepartureTo   string `json:"departureTo"`
	Date          string `json:"date"`
}

type cheapestResponse struct {
	SearchID string    `json:"searchId"`
	Fare     fareEntry `json:"fare"`
}

type fareEntry struct {
	Price         string `json:"price"`
	Currency      string `json:"currency"`
	FlightNumber  string `json:"flightNumber"`
	DepartureTime string `json:"departureTime"`
	Source        string `json:"source"`
}

type errorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details"`
}
