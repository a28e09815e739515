// Package response provides standardized HTTP response builders for the
// search pipeline API. It centralizes response formatting so every endpoint
// returns the same envelope.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response is the standardized API response envelope.
type Response struct {
	// Success indicates whether the request was successful.
	Success bool `json:"success"`

	// Data contains the response payload for successful responses.
	Data interface{} `json:"data,omitempty"`

	// Error contains error details for failed responses.
	Error *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail contains structured error information.
type ErrorDetail struct {
	// Code is a machine-readable error code.
	Code string `json:"code"`

	// Message is a human-readable error message.
	Message string `json:"message"`
}

// Error codes used in API responses.
const (
	CodeInvalidRequest  = "invalid_request"
	CodeValidationError = "validation_error"
	CodeUnauthorized    = "unauthorized"
	CodeUpstreamError   = "upstream_error"
	CodeTimeout         = "timeout"
	CodeInternalError   = "internal_error"
)

// OK writes a 200 OK response with the payload wrapped in the envelope.
func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, &Response{Success: true, Data: data})
}

// Fail writes an error response with the given status, code, and message.
func Fail(c echo.Context, status int, code, message string) error {
	return c.JSON(status, &Response{
		Success: false,
		Error:   &ErrorDetail{Code: code, Message: message},
	})
}
