// Package fareapi looks up fares through a running cheapest-fly server.
package fareapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/flight-search/cheapest-fly/internal/domain"
	"github.com/flight-search/cheapest-fly/internal/infrastructure/retry"
)

// ProviderName is the unique identifier for the fare API client.
const ProviderName = "fareapi"

const (
	cheapestPath    = "/api/v1/fares/cheapest"
	departureLayout = "2006-01-02T15:04:05"
	maxErrorBody    = 4 << 10
)

// Client implements domain.FareLookup over the server's HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the provider identifier.
func (c *Client) Name() string {
	return ProviderName
}

// LookupCheapestFare posts the query to the server and decodes the fare.
func (c *Client) LookupCheapestFare(ctx context.Context, query domain.FlightQuery) (domain.Fare, error) {
	if err := ctx.Err(); err != nil {
		return domain.Fare{}, contextError(err)
	}

	payload, err := json.Marshal(cheapestRequest{
		DepartureFrom: query.DepartureFrom(),
		DepartureTo:   query.DepartureTo(),
		Date:          query.Date(),
	})
	if err != nil {
		return domain.Fare{}, domain.NewProviderError(ProviderName, fmt.Errorf("encode request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+cheapestPath, bytes.NewReader(payload))
	if err != nil {
		return domain.Fare{}, domain.NewProviderError(ProviderName, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.Fare{}, contextError(ctxErr)
		}
		return domain.Fare{}, domain.NewProviderUnavailableError(ProviderName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Fare{}, statusError(resp)
	}

	var body cheapestResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.Fare{}, domain.NewProviderError(ProviderName, fmt.Errorf("failed to parse response: %w", err))
	}
	return toFare(body.Fare)
}

func toFare(f fareEntry) (domain.Fare, error) {
	price, err := decimal.NewFromString(f.Price)
	if err != nil {
		return domain.Fare{}, domain.NewProviderError(ProviderName, fmt.Errorf("invalid price %q: %w", f.Price, err))
	}

	fare := domain.Fare{
		Price:        price,
		Currency:     f.Currency,
		FlightNumber: f.FlightNumber,
		Source:       f.Source,
	}
	if fare.Source == "" {
		fare.Source = ProviderName
	}
	if f.DepartureTime != "" {
		if t, err := time.Parse(departureLayout, f.DepartureTime); err == nil {
			fare.DepartureTime = t
		}
	}
	return fare, nil
}

// statusError maps the server's error responses back to domain errors.
func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var body errorBody
	_ = json.Unmarshal(raw, &body)

	switch resp.StatusCode {
	case http.StatusGatewayTimeout:
		return domain.NewProviderTimeoutError(ProviderName)
	case http.StatusUnprocessableEntity:
		return rejected(body.Message)
	case http.StatusBadRequest:
		return rejected(badRequestReason(body))
	default:
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return domain.NewProviderUnavailableError(ProviderName, fmt.Errorf("status %d", resp.StatusCode))
		}
		return rejected(strings.ToLower(http.StatusText(resp.StatusCode)))
	}
}

// rejected builds a rejection that Do never repeats.
func rejected(reason string) error {
	return retry.NewPermanent(domain.NewProviderError(ProviderName, domain.NewRejectedError(reason)))
}

// badRequestReason prefers field details, which carry the useful text.
func badRequestReason(body errorBody) string {
	if len(body.Details) == 0 {
		return body.Message
	}
	fields := make([]string, 0, len(body.Details))
	for field := range body.Details {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, body.Details[field])
	}
	return strings.Join(msgs, "; ")
}

func contextError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.NewProviderTimeoutError(ProviderName)
	}
	return domain.NewProviderError(ProviderName, err)
}
