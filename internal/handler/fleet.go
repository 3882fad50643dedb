package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"xeghep/internal/domain"
	"xeghep/internal/service"
)

// FleetHandler handles HTTP requests for the driver and vehicle rosters.
type FleetHandler struct {
	fleetService *service.FleetService
}

// NewFleetHandler creates a new FleetHandler.
func NewFleetHandler(fleetService *service.FleetService) *FleetHandler {
	return &FleetHandler{fleetService: fleetService}
}

// CreateDriverRequest is the HTTP request body for adding a driver.
type CreateDriverRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// DriverResponse is the HTTP representation of a driver.
type DriverResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// CreateVehicleRequest is the HTTP request body for adding a vehicle.
type CreateVehicleRequest struct {
	Model        string `json:"model"`
	Type         string `json:"type,omitempty"`
	LicensePlate string `json:"license_plate"`
}

// VehicleResponse is the HTTP representation of a vehicle.
type VehicleResponse struct {
	ID           string `json:"id"`
	Model        string `json:"model"`
	Type         string `json:"type"`
	LicensePlate string `json:"license_plate"`
	Capacity     int    `json:"capacity"`
}

func toDriverResponse(d domain.Driver) DriverResponse {
	return DriverResponse{ID: d.ID, Name: d.Name, Phone: d.Phone}
}

func toVehicleResponse(v domain.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:           v.ID,
		Model:        v.Model,
		Type:         v.Type,
		LicensePlate: v.LicensePlate,
		Capacity:     v.Capacity(),
	}
}

// CreateDriver handles POST /v1/drivers
func (h *FleetHandler) CreateDriver(c *gin.Context) {
	var req CreateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c)
		return
	}

	driver, err := h.fleetService.AddDriver(c.Request.Context(), req.Name, req.Phone)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toDriverResponse(*driver))
}

// ListDrivers handles GET /v1/drivers
func (h *FleetHandler) ListDrivers(c *gin.Context) {
	drivers := h.fleetService.ListDrivers(c.Request.Context())

	response := make([]DriverResponse, 0, len(drivers))
	for _, d := range drivers {
		response = append(response, toDriverResponse(d))
	}
	respondJSON(c, http.StatusOK, response)
}

// DeleteDriver handles DELETE /v1/drivers/:id
func (h *FleetHandler) DeleteDriver(c *gin.Context) {
	if err := h.fleetService.DeleteDriver(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateVehicle handles POST /v1/vehicles
func (h *FleetHandler) CreateVehicle(c *gin.Context) {
	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c)
		return
	}

	vehicle, err := h.fleetService.AddVehicle(c.Request.Context(), req.Model, req.Type, req.LicensePlate)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toVehicleResponse(*vehicle))
}

// ListVehicles handles GET /v1/vehicles
func (h *FleetHandler) ListVehicles(c *gin.Context) {
	vehicles := h.fleetService.ListVehicles(c.Request.Context())

	response := make([]VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		response = append(response, toVehicleResponse(v))
	}
	respondJSON(c, http.StatusOK, response)
}

// DeleteVehicle handles DELETE /v1/vehicles/:id
func (h *FleetHandler) DeleteVehicle(c *gin.Context) {
	if err := h.fleetService.DeleteVehicle(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
