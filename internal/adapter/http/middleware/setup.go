package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/flight-search/cheapest-fly/internal/infrastructure/logger"
)

// Setup registers all middleware on the Echo instance. Order matters:
//  1. RequestID, so every later log line carries the id
//  2. RequestLogger, which also sees responses written by Recover
//  3. Recover, closest to the handlers
//
// Call it before registering routes.
func Setup(e *echo.Echo, log *logger.Logger, recovery RecoveryConfig) {
	e.Use(RequestID())
	e.Use(RequestLogger(log))
	e.Use(Recover(log, recovery))
}
