package ryanair

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-search/cheapest-fly/internal/domain"
	"github.com/flight-search/cheapest-fly/internal/infrastructure/retry"
)

func testQuery(t *testing.T) domain.FlightQuery {
	t.Helper()
	q, err := domain.ValidateForm("vno", "bcn", "2030-01-01", time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return q
}

// TestAdapter_Name tests the Name method.
func TestAdapter_Name(t *testing.T) {
	adapter := NewAdapter("")
	assert.Equal(t, "ryanair", adapter.Name())
	assert.Equal(t, DefaultBaseURL, adapter.baseURL)
}

// TestAdapter_ImplementsInterface ensures Adapter implements FareLookup.
func TestAdapter_ImplementsInterface(t *testing.T) {
	var _ domain.FareLookup = (*Adapter)(nil)
}

func TestAdapter_RequestShape(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		_, _ = w.Write([]byte(`{"fares":[{"outbound":{"flightNumber":"FR1","departureDate":"2030-01-01T06:00:00","price":{"value":10,"currencyCode":"EUR"}}}]}`))
	}))
	defer srv.Close()

	_, err := NewAdapter(srv.URL+"/").LookupCheapestFare(context.Background(), testQuery(t))
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, "/farfnd/v4/oneWayFares", got.URL.Path)
	params := got.URL.Query()
	assert.Equal(t, "VNO", params.Get("departureAirportIataCode"))
	assert.Equal(t, "BCN", params.Get("arrivalAirportIataCode"))
	assert.Equal(t, "2030-01-01", params.Get("outboundDepartureDateFrom"))
	assert.Equal(t, "2030-01-01", params.Get("outboundDepartureDateTo"))
}

// TestAdapter_LookupCheapestFare tests responses of the fare finder.
func TestAdapter_LookupCheapestFare(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		body          string
		wantPrice     string
		wantCurrency  string
		wantFlight    string
		wantErr       error
		wantRejected  string
		wantRetryable bool
	}{
		{
			name:   "single fare",
			status: http.StatusOK,
			body: `{
				"fares": [{
					"outbound": {
						"departureAirport": {"iataCode": "VNO", "name": "Vilnius"},
						"arrivalAirport": {"iataCode": "BCN", "name": "Barcelona"},
						"departureDate": "2030-01-01T06:25:00",
						"arrivalDate": "2030-01-01T09:10:00",
						"price": {"value": 450.0, "currencyCode": "USD"},
						"flightNumber": "FR2984"
					}
				}],
				"size": 1
			}`,
			wantPrice:    "450.00",
			wantCurrency: "USD",
			wantFlight:   "FR2984",
		},
		{
			name:   "cheapest of several",
			status: http.StatusOK,
			body: `{"fares": [
				{"outbound": {"flightNumber": "FR1", "departureDate": "2030-01-01T06:00:00", "price": {"value": 89.99, "currencyCode": "EUR"}}},
				{"outbound": {"flightNumber": "FR2", "departureDate": "2030-01-01T18:00:00", "price": {"value": 19.99, "currencyCode": "eur"}}},
				{"outbound": {"flightNumber": "FR3", "departureDate": "2030-01-01T12:00:00", "price": {"value": 45.5, "currencyCode": "EUR"}}}
			]}`,
			wantPrice:    "19.99",
			wantCurrency: "EUR",
			wantFlight:   "FR2",
		},
		{
			name:   "unusable fares are skipped",
			status: http.StatusOK,
			body: `{"fares": [
				{"outbound": {"flightNumber": "FR1", "departureDate": "garbage", "price": {"value": 5, "currencyCode": "EUR"}}},
				{"outbound": {"flightNumber": "FR2", "departureDate": "2030-01-01T18:00:00", "price": {"value": 0, "currencyCode": "EUR"}}},
				{"outbound": {"flightNumber": "FR3", "departureDate": "2030-01-01T12:00:00", "price": {"value": 30, "currencyCode": "EUR"}}}
			]}`,
			wantPrice:    "30.00",
			wantCurrency: "EUR",
			wantFlight:   "FR3",
		},
		{
			name:    "empty fares",
			status:  http.StatusOK,
			body:    `{"fares": [], "size": 0}`,
			wantErr: domain.ErrNoFares,
		},
		{
			name:    "malformed body",
			status:  http.StatusOK,
			body:    `{"fares": [`,
			wantErr: nil,
		},
		{
			name:          "server error is retryable",
			status:        http.StatusBadGateway,
			body:          `upstream down`,
			wantErr:       domain.ErrProviderUnavailable,
			wantRetryable: true,
		},
		{
			name:          "rate limited is retryable",
			status:        http.StatusTooManyRequests,
			wantErr:       domain.ErrProviderUnavailable,
			wantRetryable: true,
		},
		{
			name:         "bad request carries the api message",
			status:       http.StatusBadRequest,
			body:         `{"code": "InvalidAirport", "message": "Unknown airport XXX"}`,
			wantRejected: "Unknown airport XXX",
		},
		{
			name:         "not found without body",
			status:       http.StatusNotFound,
			wantRejected: "not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			fare, err := NewAdapter(srv.URL).LookupCheapestFare(context.Background(), testQuery(t))

			if tt.wantPrice != "" {
				require.NoError(t, err)
				assert.Equal(t, tt.wantPrice, fare.Price.StringFixed(2))
				assert.Equal(t, tt.wantCurrency, fare.Currency)
				assert.Equal(t, tt.wantFlight, fare.FlightNumber)
				assert.Equal(t, ProviderName, fare.Source)
				assert.False(t, fare.DepartureTime.IsZero())
				return
			}

			require.Error(t, err)
			var providerErr *domain.ProviderError
			require.True(t, errors.As(err, &providerErr), "error should be ProviderError")
			assert.Equal(t, ProviderName, providerErr.Provider)
			assert.Equal(t, tt.wantRetryable, providerErr.Retryable)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantRejected != "" {
				var rejected *domain.RejectedError
				require.True(t, errors.As(err, &rejected))
				assert.Equal(t, tt.wantRejected, rejected.Reason)
			}
			assert.Equal(t, tt.wantRejected != "", retry.IsPermanent(err), "only rejections are permanent")
		})
	}
}

func TestAdapter_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewAdapter(srv.URL).LookupCheapestFare(ctx, testQuery(t))

	require.Error(t, err)
	assert.True(t, domain.IsProviderTimeout(err))
}

// TestAdapter_ContextCancellation tests context cancellation handling.
func TestAdapter_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewAdapter("http://127.0.0.1:1").LookupCheapestFare(ctx, testQuery(t))

	require.Error(t, err)
	var providerErr *domain.ProviderError
	require.True(t, errors.As(err, &providerErr))
	assert.Equal(t, context.Canceled, providerErr.Err)
	assert.False(t, providerErr.Retryable, "context cancellation should not be retryable")
}

func TestAdapter_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	_, err := NewAdapter(addr).LookupCheapestFare(context.Background(), testQuery(t))

	require.Error(t, err)
	assert.True(t, domain.IsProviderUnavailable(err))
	assert.True(t, domain.IsRetryable(err))
}

// TestParseDateTime tests the accepted datetime layouts.
func TestParseDateTime(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
		hour    int
	}{
		{input: "2030-01-01T06:25:00", hour: 6},
		{input: "2030-01-01T06:25", hour: 6},
		{input: "2030-01-01T21:05:00+01:00", hour: 21},
		{input: "01/01/2030", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseDateTime(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.hour, got.Hour())
		})
	}
}

func TestNormalize_NoUsableFares(t *testing.T) {
	_, err := normalize([]RyanairFare{
		{Outbound: RyanairFlight{Price: RyanairPrice{Value: decimal.NewFromInt(-1), CurrencyCode: "EUR"}}},
		{Outbound: RyanairFlight{Price: RyanairPrice{Value: decimal.NewFromInt(10)}}},
	})
	assert.ErrorIs(t, err, domain.ErrNoFares)
}

func TestNormalize_ComparesWithinFirstCurrency(t *testing.T) {
	fare := func(value int64, currency, flight string) RyanairFare {
		return RyanairFare{Outbound: RyanairFlight{
			DepartureDate: "2030-01-01T06:25:00",
			FlightNumber:  flight,
			Price:         RyanairPrice{Value: decimal.NewFromInt(value), CurrencyCode: currency},
		}}
	}

	got, err := normalize([]RyanairFare{
		fare(50, "EUR", "FR1"),
		fare(10, "GBP", "FR2"),
		fare(40, "eur", "FR3"),
	})

	require.NoError(t, err)
	assert.Equal(t, "40.00 EUR", got.Display())
	assert.Equal(t, "FR3", got.FlightNumber)
}
