// Package ryanair looks up one-way fares through the public Ryanair fare finder API.
package ryanair

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/flight-search/cheapest-fly/internal/domain"
	"github.com/flight-search/cheapest-fly/internal/infrastructure/retry"
)

// ProviderName is the unique identifier for the Ryanair fare finder.
const ProviderName = "ryanair"

// DefaultBaseURL is the public fare finder host.
const DefaultBaseURL = "https://services-api.ryanair.com"

const faresPath = "/farfnd/v4/oneWayFares"

// maxErrorBody bounds how much of a 4xx body is read for the rejection reason.
const maxErrorBody = 4 << 10

// Adapter implements domain.FareLookup against the oneWayFares endpoint.
type Adapter struct {
	baseURL string
	client  *http.Client
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(a *Adapter) {
		if c != nil {
			a.client = c
		}
	}
}

// NewAdapter creates a new Ryanair adapter. An empty baseURL uses DefaultBaseURL.
func NewAdapter(baseURL string, opts ...Option) *Adapter {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	a := &Adapter{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name returns the provider identifier.
func (a *Adapter) Name() string {
	return ProviderName
}

// LookupCheapestFare asks the API for fares departing on the query's date and
// returns the cheapest one.
func (a *Adapter) LookupCheapestFare(ctx context.Context, query domain.FlightQuery) (domain.Fare, error) {
	if err := ctx.Err(); err != nil {
		return domain.Fare{}, contextError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.endpoint(query), nil)
	if err != nil {
		return domain.Fare{}, domain.NewProviderError(ProviderName, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.Fare{}, contextError(ctxErr)
		}
		return domain.Fare{}, domain.NewProviderUnavailableError(ProviderName, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return domain.Fare{}, err
	}

	var body FaresResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.Fare{}, contextError(ctxErr)
		}
		return domain.Fare{}, domain.NewProviderError(ProviderName, fmt.Errorf("failed to parse response: %w", err))
	}

	return normalize(body.Fares)
}

func (a *Adapter) endpoint(query domain.FlightQuery) string {
	params := url.Values{}
	params.Set("departureAirportIataCode", query.DepartureFrom())
	params.Set("arrivalAirportIataCode", query.DepartureTo())
	params.Set("outboundDepartureDateFrom", query.Date())
	params.Set("outboundDepartureDateTo", query.Date())
	return a.baseURL + faresPath + "?" + params.Encode()
}

// checkStatus maps non-2xx responses to domain errors. Rejections are
// marked permanent so no retry policy repeats them.
func checkStatus(resp *http.Response) error {
	code := resp.StatusCode
	switch {
	case code >= 200 && code < 300:
		return nil
	case code >= 500 || code == http.StatusTooManyRequests:
		return domain.NewProviderUnavailableError(ProviderName, fmt.Errorf("status %d", code))
	default:
		return retry.NewPermanent(domain.NewProviderError(ProviderName, domain.NewRejectedError(rejectionReason(resp))))
	}
}

func rejectionReason(resp *http.Response) string {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var body errorResponse
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return strings.ToLower(http.StatusText(resp.StatusCode))
}

func contextError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.NewProviderTimeoutError(ProviderName)
	}
	return domain.NewProviderError(ProviderName, err)
}
