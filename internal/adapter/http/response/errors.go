package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// InvalidRequestBody writes a 400 response for malformed request bodies.
func InvalidRequestBody(c echo.Context) error {
	return Fail(c, http.StatusBadRequest, CodeInvalidRequest, "Failed to parse request body")
}

// ValidationError writes a 400 response with the validation message.
// Validation failures never reached the network and are surfaced inline.
func ValidationError(c echo.Context, message string) error {
	return Fail(c, http.StatusBadRequest, CodeValidationError, message)
}

// Unauthorized writes a 401 response. It is distinct from generic upstream
// failures so the caller can prompt re-authentication.
func Unauthorized(c echo.Context, message string) error {
	return Fail(c, http.StatusUnauthorized, CodeUnauthorized, message)
}

// UpstreamError writes a 502 response for vendor relay failures.
func UpstreamError(c echo.Context, message string) error {
	return Fail(c, http.StatusBadGateway, CodeUpstreamError, message)
}

// GatewayTimeout writes a 504 response for timed-out searches.
func GatewayTimeout(c echo.Context) error {
	return Fail(c, http.StatusGatewayTimeout, CodeTimeout, "Request timed out")
}

// InternalServerError writes a generic 500 response.
func InternalServerError(c echo.Context) error {
	return Fail(c, http.StatusInternalServerError, CodeInternalError, "An unexpected error occurred")
}
