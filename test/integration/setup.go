// Package integration provides helpers and integration tests for the fare search system.
// Integration tests verify that components work together correctly, including
// HTTP handlers, use cases, the dispatcher and fare lookups.
package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/labstack/echo/v4"

	farehttp "github.com/flight-search/cheapest-fly/internal/adapter/http"
	"github.com/flight-search/cheapest-fly/internal/adapter/http/middleware"
	"github.com/flight-search/cheapest-fly/internal/adapter/http/response"
	"github.com/flight-search/cheapest-fly/internal/domain"
	"github.com/flight-search/cheapest-fly/internal/infrastructure/logger"
	"github.com/flight-search/cheapest-fly/internal/usecase"
	"github.com/flight-search/cheapest-fly/test/testutil"
)

// TestServer wraps an Echo instance and provides helper methods for integration testing.
type TestServer struct {
	Echo    *echo.Echo
	Handler *farehttp.FareHandler
}

// NewTestServer creates a server with the full middleware stack whose
// validator treats testutil.Today as today.
func NewTestServer(uc usecase.FareSearchUseCase) *TestServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	middleware.Setup(e, logger.Nop(), middleware.DefaultRecoveryConfig())

	handler := farehttp.NewFareHandler(uc, usecase.NewFormValidator(testutil.FixedClock(), time.UTC))
	farehttp.RegisterRoutes(e, handler)

	return &TestServer{
		Echo:    e,
		Handler: handler,
	}
}

// Request represents a test HTTP request configuration.
type Request struct {
	Method      string
	Path        string
	Body        any
	ContentType string
}

// Response represents a test HTTP response.
type Response struct {
	Code    int
	Body    []byte
	Headers http.Header
}

// Do executes a test request and returns the response.
func (ts *TestServer) Do(req Request) Response {
	var bodyReader *bytes.Reader
	switch body := req.Body.(type) {
	case nil:
		bodyReader = bytes.NewReader(nil)
	case string:
		bodyReader = bytes.NewReader([]byte(body))
	default:
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	httpReq := httptest.NewRequest(req.Method, req.Path, bodyReader)

	if req.ContentType != "" {
		httpReq.Header.Set(echo.HeaderContentType, req.ContentType)
	} else if req.Body != nil {
		httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	ts.Echo.ServeHTTP(rec, httpReq)

	return Response{
		Code:    rec.Code,
		Body:    rec.Body.Bytes(),
		Headers: rec.Header(),
	}
}

// CheapestFareRequest posts body to the cheapest fare endpoint.
func (ts *TestServer) CheapestFareRequest(body any) Response {
	return ts.Do(Request{
		Method: http.MethodPost,
		Path:   "/api/v1/fares/cheapest",
		Body:   body,
	})
}

// HealthRequest makes a health check request.
func (ts *TestServer) HealthRequest() Response {
	return ts.Do(Request{
		Method: http.MethodGet,
		Path:   "/health",
	})
}

// ParseFare parses the response body as a CheapestFareResponse.
func (r *Response) ParseFare() (*farehttp.CheapestFareResponse, error) {
	var resp farehttp.CheapestFareResponse
	if err := json.Unmarshal(r.Body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ParseError parses the response body as an error detail.
func (r *Response) ParseError() (*response.ErrorDetail, error) {
	var errResp response.ErrorDetail
	if err := json.Unmarshal(r.Body, &errResp); err != nil {
		return nil, err
	}
	return &errResp, nil
}

// FareRequestBody builds a request body for the cheapest fare endpoint.
func FareRequestBody(from, to, date string) farehttp.CheapestFareRequest {
	return farehttp.CheapestFareRequest{DepartureFrom: from, DepartureTo: to, Date: date}
}

// CreateUseCase creates a fare search with a short lookup timeout.
func CreateUseCase(lookup domain.FareLookup) usecase.FareSearchUseCase {
	return usecase.NewFareSearchUseCase(lookup, usecase.FareSearchConfig{LookupTimeout: 500 * time.Millisecond})
}

// CreateUseCaseWithConfig creates a fare search with custom configuration.
func CreateUseCaseWithConfig(lookup domain.FareLookup, cfg usecase.FareSearchConfig) usecase.FareSearchUseCase {
	return usecase.NewFareSearchUseCase(lookup, cfg)
}
