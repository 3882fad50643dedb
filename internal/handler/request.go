package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"xeghep/internal/domain"
	"xeghep/internal/service"
)

// RequestHandler handles HTTP requests for passenger ride requests.
type RequestHandler struct {
	requestService *service.RequestService
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(requestService *service.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

// SubmitRideRequest is the HTTP request body for a quick ride request.
type SubmitRideRequest struct {
	PassengerName  string `json:"passenger_name"`
	PassengerPhone string `json:"passenger_phone"`
	Origin         string `json:"origin"`
	Destination    string `json:"destination"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	Seats          int    `json:"seats"`
	Note           string `json:"note,omitempty"`
}

// AssignRideRequest is the HTTP request body for assigning a driver.
type AssignRideRequest struct {
	DriverID    string `json:"driver_id"`
	VehicleID   string `json:"vehicle_id,omitempty"`
	AgreedPrice *int64 `json:"agreed_price,omitempty"`
}

// RideRequestResponse is the HTTP representation of a ride request.
type RideRequestResponse struct {
	ID                  string `json:"id"`
	PassengerName       string `json:"passenger_name"`
	PassengerPhone      string `json:"passenger_phone"`
	Origin              string `json:"origin"`
	Destination         string `json:"destination"`
	Date                string `json:"date"`
	Time                string `json:"time"`
	Seats               int    `json:"seats"`
	Note                string `json:"note,omitempty"`
	Status              string `json:"status"`
	CreatedAt           string `json:"created_at"`
	AssignedDriverID    string `json:"assigned_driver_id,omitempty"`
	AssignedDriverName  string `json:"assigned_driver_name,omitempty"`
	AssignedDriverPhone string `json:"assigned_driver_phone,omitempty"`
	AssignedVehicleInfo string `json:"assigned_vehicle_info,omitempty"`
	AgreedPrice         *int64 `json:"agreed_price,omitempty"`
}

// AssignResponse is the HTTP response for an assignment.
type AssignResponse struct {
	Request RideRequestResponse `json:"request"`
	Booking BookingResponse     `json:"booking"`
}

func toRideRequestResponse(r domain.RideRequest) RideRequestResponse {
	return RideRequestResponse{
		ID:                  r.ID,
		PassengerName:       r.PassengerName,
		PassengerPhone:      r.PassengerPhone,
		Origin:              r.Origin,
		Destination:         r.Destination,
		Date:                r.Date,
		Time:                r.Time,
		Seats:               r.Seats,
		Note:                r.Note,
		Status:              string(r.Status),
		CreatedAt:           r.CreatedAt.Format(time.RFC3339),
		AssignedDriverID:    r.AssignedDriverID,
		AssignedDriverName:  r.AssignedDriverName,
		AssignedDriverPhone: r.AssignedDriverPhone,
		AssignedVehicleInfo: r.AssignedVehicleInfo,
		AgreedPrice:         r.AgreedPrice,
	}
}

// Submit handles POST /v1/requests
func (h *RequestHandler) Submit(c *gin.Context) {
	var req SubmitRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c)
		return
	}

	request, err := h.requestService.Submit(c.Request.Context(), service.SubmitRequest{
		PassengerName:  req.PassengerName,
		PassengerPhone: req.PassengerPhone,
		Origin:         req.Origin,
		Destination:    req.Destination,
		Date:           req.Date,
		Time:           req.Time,
		Seats:          req.Seats,
		Note:           req.Note,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toRideRequestResponse(*request))
}

// ListRequests handles GET /v1/requests
func (h *RequestHandler) ListRequests(c *gin.Context) {
	requests := h.requestService.ListRequests(c.Request.Context())

	response := make([]RideRequestResponse, 0, len(requests))
	for _, r := range requests {
		response = append(response, toRideRequestResponse(r))
	}
	respondJSON(c, http.StatusOK, response)
}

// Assign handles POST /v1/requests/:id/assign
func (h *RequestHandler) Assign(c *gin.Context) {
	var req AssignRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c)
		return
	}

	result, err := h.requestService.Assign(c.Request.Context(), service.AssignRequestInput{
		RequestID:   c.Param("id"),
		DriverID:    req.DriverID,
		VehicleID:   req.VehicleID,
		AgreedPrice: req.AgreedPrice,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, AssignResponse{
		Request: toRideRequestResponse(*result.Request),
		Booking: toBookingResponse(*result.Booking),
	})
}

// Cancel handles POST /v1/requests/:id/cancel
func (h *RequestHandler) Cancel(c *gin.Context) {
	request, err := h.requestService.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toRideRequestResponse(*request))
}

// Delete handles DELETE /v1/requests/:id?confirm=true
func (h *RequestHandler) Delete(c *gin.Context) {
	if err := h.requestService.Delete(c.Request.Context(), c.Param("id"), confirmed(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
