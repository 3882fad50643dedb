package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"xeghep/internal/repository"
	"xeghep/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	if code == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

func respondBadBody(c *gin.Context) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidRideID),
		errors.Is(err, service.ErrInvalidBookingID),
		errors.Is(err, service.ErrInvalidRequestID),
		errors.Is(err, service.ErrInvalidDriverID),
		errors.Is(err, service.ErrInvalidVehicleID),
		errors.Is(err, service.ErrInvalidPassenger),
		errors.Is(err, service.ErrInvalidDriver),
		errors.Is(err, service.ErrInvalidVehicle),
		errors.Is(err, service.ErrInvalidRoute),
		errors.Is(err, service.ErrInvalidSchedule),
		errors.Is(err, service.ErrInvalidSeatCount),
		errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrInvalidRideType),
		errors.Is(err, service.ErrInvalidBookingStatus),
		errors.Is(err, service.ErrInvalidDateRange):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, service.ErrRideFullyBooked),
		errors.Is(err, service.ErrInsufficientSeats),
		errors.Is(err, service.ErrRequestNotPending),
		errors.Is(err, service.ErrBookingNotPending),
		errors.Is(err, service.ErrRequestLocked):
		return http.StatusConflict

	// Destructive operations without explicit confirmation
	case errors.Is(err, service.ErrConfirmationRequired):
		return http.StatusPreconditionRequired

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
