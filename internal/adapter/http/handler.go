// Package http provides the HTTP handler layer for the fare API.
// It handles request parsing, validation, response formatting, and outcome mapping.
package http

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/flight-search/cheapest-fly/internal/adapter/http/middleware"
	"github.com/flight-search/cheapest-fly/internal/adapter/http/response"
	"github.com/flight-search/cheapest-fly/internal/domain"
	"github.com/flight-search/cheapest-fly/internal/usecase"
)

// FareHandler handles HTTP requests for fare endpoints.
type FareHandler struct {
	search    usecase.FareSearchUseCase
	validator QueryValidator
	newID     func() string
}

// NewFareHandler creates a new FareHandler.
func NewFareHandler(search usecase.FareSearchUseCase, validator QueryValidator) *FareHandler {
	return &FareHandler{
		search:    search,
		validator: validator,
		newID:     uuid.NewString,
	}
}

// CheapestFare handles POST /api/v1/fares/cheapest
//
// @Summary Find the cheapest fare
// @Description Looks up the cheapest one-way fare between two airports on a date
// @Tags fares
// @Accept json
// @Produce json
// @Param request body CheapestFareRequest true "Route and date"
// @Success 200 {object} CheapestFareResponse
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 422 {object} response.ErrorDetail "Rejected by the fare service"
// @Failure 503 {object} response.ErrorDetail "Fare service unavailable"
// @Failure 504 {object} response.ErrorDetail "Fare service timeout"
// @Router /api/v1/fares/cheapest [post]
func (h *FareHandler) CheapestFare(c echo.Context) error {
	var req CheapestFareRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	query, err := req.ToQuery(h.validator)
	if err != nil {
		return h.handleValidationError(c, err)
	}

	ctx := c.Request().Context()
	searchID := h.newID()
	log := middleware.Logger(c).WithContext("search_id", searchID)

	outcome := h.search.Search(ctx, query)
	if !outcome.OK() {
		if errors.Is(ctx.Err(), context.Canceled) {
			return response.RequestCancelled(c)
		}
		log.Warn().
			Str("route", query.String()).
			Str("kind", outcome.Failure.Kind.String()).
			Str("reason", outcome.Failure.Reason).
			Msg("Fare lookup failed")
		return h.handleFailure(c, outcome.Failure)
	}

	log.Info().
		Str("route", query.String()).
		Str("fare", outcome.Fare.Display()).
		Msg("Fare found")

	return response.OK(c, ToCheapestFareResponse(searchID, query, *outcome.Fare))
}

// handleValidationError handles validation errors and returns a 400 response.
func (h *FareHandler) handleValidationError(c echo.Context, err error) error {
	var validationErrs *ValidationErrors
	if errors.As(err, &validationErrs) {
		return response.ValidationError(c, validationErrs.ToMap())
	}
	return response.ValidationErrorWithMessage(c, err.Error())
}

// handleFailure maps a failed outcome to an HTTP response.
func (h *FareHandler) handleFailure(c echo.Context, failure *domain.Failure) error {
	switch failure.Kind {
	case domain.Timeout:
		return response.GatewayTimeout(c)
	case domain.Unavailable:
		return response.ServiceUnavailable(c)
	case domain.Rejected:
		return response.Rejected(c, failure.Reason)
	default:
		return response.InternalServerError(c)
	}
}

// Health handles GET /health
//
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} response.HealthResponse
// @Router /health [get]
func (h *FareHandler) Health(c echo.Context) error {
	return response.Health(c)
}
