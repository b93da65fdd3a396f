package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func writeError(c echo.Context, status int, code, message string, details map[string]string) error {
	return c.JSON(status, &ErrorDetail{
		Code:    code,
		Message: message,
		Details: details,
	})
}

// InvalidRequestBody writes a 400 Bad Request response for malformed request bodies.
func InvalidRequestBody(c echo.Context) error {
	return writeError(c, http.StatusBadRequest, CodeInvalidRequest, MsgInvalidRequestBody, nil)
}

// ValidationError writes a 400 Bad Request response with validation error details.
func ValidationError(c echo.Context, details map[string]string) error {
	return writeError(c, http.StatusBadRequest, CodeValidationError, MsgValidationFailed, details)
}

// ValidationErrorWithMessage writes a 400 Bad Request response with a custom message.
func ValidationErrorWithMessage(c echo.Context, message string) error {
	return writeError(c, http.StatusBadRequest, CodeValidationError, message, nil)
}

// Rejected writes a 422 Unprocessable Entity response. An empty reason uses MsgRejected.
func Rejected(c echo.Context, reason string) error {
	if reason == "" {
		reason = MsgRejected
	}
	return writeError(c, http.StatusUnprocessableEntity, CodeRejected, reason, nil)
}

// ServiceUnavailable writes a 503 Service Unavailable response.
func ServiceUnavailable(c echo.Context) error {
	return writeError(c, http.StatusServiceUnavailable, CodeServiceUnavailable, MsgServiceUnavailable, nil)
}

// GatewayTimeout writes a 504 Gateway Timeout response.
func GatewayTimeout(c echo.Context) error {
	return writeError(c, http.StatusGatewayTimeout, CodeTimeout, MsgTimeout, nil)
}

// RequestCancelled writes a 504 Gateway Timeout response for cancelled requests.
func RequestCancelled(c echo.Context) error {
	return writeError(c, http.StatusGatewayTimeout, CodeTimeout, MsgRequestCancelled, nil)
}

// InternalServerError writes a 500 Internal Server Error response.
func InternalServerError(c echo.Context) error {
	return writeError(c, http.StatusInternalServerError, CodeInternalError, MsgInternalError, nil)
}
