package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/flight-search/cheapest-fly/internal/infrastructure/logger"
)

const loggerKey = "logger"

// RequestLogger returns middleware that logs HTTP requests on completion and
// stores a request scoped logger for handlers, see Logger.
func RequestLogger(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			reqID := GetRequestID(c)
			c.Set(loggerKey, log.WithRequestID(reqID))

			err := next(c)
			if err != nil {
				// Let Echo's error handler write the response first
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			var event *zerolog.Event
			status := res.Status
			switch {
			case status >= 500:
				event = log.Error()
			case status >= 400:
				event = log.Warn()
			default:
				event = log.Info()
			}

			event.
				Str("request_id", reqID).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", status).
				Int64("duration_ms", time.Since(start).Milliseconds()).
				Int64("bytes_out", res.Size).
				Str("client_ip", c.RealIP()).
				Str("user_agent", req.UserAgent()).
				Msg("HTTP request")

			return nil
		}
	}
}

// Logger returns the request scoped logger, or a no-op logger outside the
// RequestLogger middleware.
func Logger(c echo.Context) *logger.Logger {
	if l, ok := c.Get(loggerKey).(*logger.Logger); ok {
		return l
	}
	return logger.Nop()
}
