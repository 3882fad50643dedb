package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"xeghep/internal/domain"
	"xeghep/internal/service"
)

// BookingHandler handles HTTP requests for bookings.
type BookingHandler struct {
	bookingService *service.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// UpdateBookingStatusRequest is the HTTP request body for confirming or
// cancelling a booking.
type UpdateBookingStatusRequest struct {
	Status string `json:"status"`
}

// RideSnapshotResponse is the ride as it was when a booking was made.
type RideSnapshotResponse struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Price       int64  `json:"price"`
	DriverName  string `json:"driver_name"`
}

// BookingResponse is the HTTP representation of a booking.
type BookingResponse struct {
	ID             string               `json:"id"`
	RideID         string               `json:"ride_id"`
	PassengerName  string               `json:"passenger_name"`
	PassengerPhone string               `json:"passenger_phone"`
	Seats          int                  `json:"seats"`
	Status         string               `json:"status"`
	Amount         int64                `json:"amount"`
	CreatedAt      string               `json:"created_at"`
	Ride           RideSnapshotResponse `json:"ride"`
}

func toBookingResponse(b domain.Booking) BookingResponse {
	return BookingResponse{
		ID:             b.ID,
		RideID:         b.RideID,
		PassengerName:  b.PassengerName,
		PassengerPhone: b.PassengerPhone,
		Seats:          b.Seats,
		Status:         string(b.Status),
		Amount:         b.Amount(),
		CreatedAt:      b.CreatedAt.Format(time.RFC3339),
		Ride: RideSnapshotResponse{
			Origin:      b.RideSnapshot.Origin,
			Destination: b.RideSnapshot.Destination,
			Date:        b.RideSnapshot.Date,
			Time:        b.RideSnapshot.Time,
			Price:       b.RideSnapshot.Price,
			DriverName:  b.RideSnapshot.DriverName,
		},
	}
}

func toBookingResponses(bookings []domain.Booking) []BookingResponse {
	response := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		response = append(response, toBookingResponse(b))
	}
	return response
}

// ListBookings handles GET /v1/bookings
func (h *BookingHandler) ListBookings(c *gin.Context) {
	bookings := h.bookingService.ListBookings(c.Request.Context())
	respondJSON(c, http.StatusOK, toBookingResponses(bookings))
}

// GetBooking handles GET /v1/bookings/:id
func (h *BookingHandler) GetBooking(c *gin.Context) {
	booking, err := h.bookingService.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toBookingResponse(*booking))
}

// UpdateStatus handles POST /v1/bookings/:id/status
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c)
		return
	}

	booking, err := h.bookingService.UpdateStatus(c.Request.Context(), c.Param("id"), domain.BookingStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toBookingResponse(*booking))
}

// DeleteBooking handles DELETE /v1/bookings/:id?confirm=true
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	err := h.bookingService.DeleteBooking(c.Request.Context(), c.Param("id"), confirmed(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// confirmed reports whether the caller passed confirm=true.
func confirmed(c *gin.Context) bool {
	ok, _ := strconv.ParseBool(c.Query("confirm"))
	return ok
}
