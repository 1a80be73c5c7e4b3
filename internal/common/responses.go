package common

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// CreateErrorResponse creates a standardized error response
func CreateErrorResponse(code string, message string, details map[string]string) *ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Details = details
	return &resp
}

// SendValidationError sends a validation error response for a single field
func SendValidationError(c echo.Context, field, message string) error {
	return SendValidationErrors(c, map[string]string{field: message})
}

// SendValidationErrors sends a validation error response for several fields
func SendValidationErrors(c echo.Context, details map[string]string) error {
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("VALIDATION_ERROR", "Validation failed", details))
}

// SendClientError sends a client error response
func SendClientError(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("CLIENT_ERROR", message, nil))
}

// SendUnprocessable sends a business rule violation with its own code
func SendUnprocessable(c echo.Context, code, message string) error {
	return c.JSON(http.StatusUnprocessableEntity, CreateErrorResponse(code, message, nil))
}

// SendConflict sends a conflict response
func SendConflict(c echo.Context, code, message string) error {
	return c.JSON(http.StatusConflict, CreateErrorResponse(code, message, nil))
}

// SendBackendError reports a failed call to the retail backend
func SendBackendError(c echo.Context, message string) error {
	return c.JSON(http.StatusBadGateway, CreateErrorResponse("BACKEND_ERROR", message, nil))
}

// SendServerError sends a server error response
func SendServerError(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, CreateErrorResponse("SERVER_ERROR", message, nil))
}

// SendNotFoundError sends a not found error response
func SendNotFoundError(c echo.Context, resource string) error {
	return c.JSON(http.StatusNotFound, CreateErrorResponse("NOT_FOUND", fmt.Sprintf("%s not found", resource), nil))
}

// SendUnauthorizedError sends an unauthorized error response
func SendUnauthorizedError(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, CreateErrorResponse("UNAUTHORIZED", "Unauthorized access", nil))
}
