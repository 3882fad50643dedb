package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"xeghep/internal/domain"
	"xeghep/internal/service"
)

// RideHandler handles HTTP requests for rides and seat bookings on them.
type RideHandler struct {
	rideService    *service.RideService
	bookingService *service.BookingService
}

// NewRideHandler creates a new RideHandler.
func NewRideHandler(rideService *service.RideService, bookingService *service.BookingService) *RideHandler {
	return &RideHandler{
		rideService:    rideService,
		bookingService: bookingService,
	}
}

// CreateRideRequest is the HTTP request body for posting a ride.
type CreateRideRequest struct {
	DriverID       string `json:"driver_id,omitempty"`
	VehicleID      string `json:"vehicle_id,omitempty"`
	DriverName     string `json:"driver_name,omitempty"`
	DriverPhone    string `json:"driver_phone,omitempty"`
	Origin         string `json:"origin"`
	Destination    string `json:"destination"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	Price          int64  `json:"price"`
	SeatsAvailable *int   `json:"seats_available,omitempty"`
	TotalSeats     *int   `json:"total_seats,omitempty"`
	CarModel       string `json:"car_model,omitempty"`
	LicensePlate   string `json:"license_plate,omitempty"`
	Type           string `json:"type,omitempty"`
	Description    string `json:"description,omitempty"`
}

// SearchRidesRequest is the HTTP request body for searching rides. Query,
// when set, is free text and takes precedence over the structured fields.
type SearchRidesRequest struct {
	Query       string `json:"query,omitempty"`
	Origin      string `json:"origin,omitempty"`
	Destination string `json:"destination,omitempty"`
	Date        string `json:"date,omitempty"`
	Time        string `json:"time,omitempty"`
	Type        string `json:"type,omitempty"`
}

// BookSeatsRequest is the HTTP request body for booking seats on a ride.
type BookSeatsRequest struct {
	PassengerName  string `json:"passenger_name"`
	PassengerPhone string `json:"passenger_phone"`
	Seats          int    `json:"seats"`
}

// RideResponse is the HTTP representation of a ride.
type RideResponse struct {
	ID             string  `json:"id"`
	DriverName     string  `json:"driver_name"`
	DriverPhone    string  `json:"driver_phone"`
	DriverRating   float64 `json:"driver_rating"`
	Origin         string  `json:"origin"`
	Destination    string  `json:"destination"`
	Date           string  `json:"date"`
	Time           string  `json:"time"`
	Price          int64   `json:"price"`
	SeatsAvailable int     `json:"seats_available"`
	TotalSeats     int     `json:"total_seats"`
	FullyBooked    bool    `json:"fully_booked"`
	CarModel       string  `json:"car_model"`
	LicensePlate   string  `json:"license_plate,omitempty"`
	Type           string  `json:"type"`
	Description    string  `json:"description,omitempty"`
}

// SearchRidesResponse is the HTTP response for a ride search.
type SearchRidesResponse struct {
	Filters domain.SearchFilters `json:"filters"`
	Rides   []RideResponse       `json:"rides"`
}

func toRideResponse(r domain.Ride) RideResponse {
	return RideResponse{
		ID:             r.ID,
		DriverName:     r.DriverName,
		DriverPhone:    r.DriverPhone,
		DriverRating:   r.DriverRating,
		Origin:         r.Origin,
		Destination:    r.Destination,
		Date:           r.Date,
		Time:           r.Time,
		Price:          r.Price,
		SeatsAvailable: r.SeatsAvailable,
		TotalSeats:     r.TotalSeats,
		FullyBooked:    r.FullyBooked(),
		CarModel:       r.CarModel,
		LicensePlate:   r.LicensePlate,
		Type:           string(r.Type),
		Description:    r.Description,
	}
}

func toRideResponses(rides []domain.Ride) []RideResponse {
	response := make([]RideResponse, 0, len(rides))
	for _, r := range rides {
		response = append(response, toRideResponse(r))
	}
	return response
}

// CreateRide handles POST /v1/rides
func (h *RideHandler) CreateRide(c *gin.Context) {
	var req CreateRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c)
		return
	}

	ride, err := h.rideService.PostRide(c.Request.Context(), service.PostRideRequest{
		DriverID:       req.DriverID,
		VehicleID:      req.VehicleID,
		DriverName:     req.DriverName,
		DriverPhone:    req.DriverPhone,
		Origin:         req.Origin,
		Destination:    req.Destination,
		Date:           req.Date,
		Time:           req.Time,
		Price:          req.Price,
		SeatsAvailable: req.SeatsAvailable,
		TotalSeats:     req.TotalSeats,
		CarModel:       req.CarModel,
		LicensePlate:   req.LicensePlate,
		Type:           domain.RideType(req.Type),
		Description:    req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toRideResponse(*ride))
}

// GetRide handles GET /v1/rides/:id
func (h *RideHandler) GetRide(c *gin.Context) {
	ride, err := h.rideService.GetRide(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toRideResponse(*ride))
}

// ListAvailable handles GET /v1/rides
func (h *RideHandler) ListAvailable(c *gin.Context) {
	rideType := domain.RideType(c.Query("type"))
	if rideType != "" && !rideType.Valid() {
		respondError(c, service.ErrInvalidRideType)
		return
	}

	rides := h.rideService.ListAvailable(c.Request.Context(), rideType)
	respondJSON(c, http.StatusOK, toRideResponses(rides))
}

// Search handles POST /v1/rides/search
func (h *RideHandler) Search(c *gin.Context) {
	var req SearchRidesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c)
		return
	}

	ctx := c.Request.Context()
	if req.Query != "" {
		rides, filters := h.rideService.SearchText(ctx, req.Query)
		respondJSON(c, http.StatusOK, SearchRidesResponse{Filters: filters, Rides: toRideResponses(rides)})
		return
	}

	filters := domain.SearchFilters{
		Origin:      req.Origin,
		Destination: req.Destination,
		Date:        req.Date,
		Time:        req.Time,
		Type:        domain.RideType(req.Type),
	}
	if filters.Type != "" && !filters.Type.Valid() {
		respondError(c, service.ErrInvalidRideType)
		return
	}

	rides := h.rideService.Search(ctx, filters)
	respondJSON(c, http.StatusOK, SearchRidesResponse{Filters: filters, Rides: toRideResponses(rides)})
}

// BookSeats handles POST /v1/rides/:id/bookings
func (h *RideHandler) BookSeats(c *gin.Context) {
	var req BookSeatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c)
		return
	}

	booking, err := h.bookingService.BookSeats(c.Request.Context(), service.BookSeatsRequest{
		RideID:         c.Param("id"),
		PassengerName:  req.PassengerName,
		PassengerPhone: req.PassengerPhone,
		Seats:          req.Seats,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toBookingResponse(*booking))
}
