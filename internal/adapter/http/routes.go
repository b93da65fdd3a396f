package http

import (
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RegisterRoutes registers all fare API routes.
func RegisterRoutes(e *echo.Echo, h *FareHandler) {
	// Health check endpoint (no version prefix)
	e.GET("/health", h.Health)

	api := e.Group("/api/v1")

	fares := api.Group("/fares")
	fares.POST("/cheapest", h.CheapestFare)
}

// RegisterSwagger serves the swagger UI under /swagger/.
func RegisterSwagger(e *echo.Echo) {
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
