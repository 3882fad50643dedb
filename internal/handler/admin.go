package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"xeghep/internal/domain"
	"xeghep/internal/service"
)

// AdminHandler serves the operator dashboard: pending badges, reports and
// driver-app notifications.
type AdminHandler struct {
	bookingService      *service.BookingService
	requestService      *service.RequestService
	reportService       *service.ReportService
	notificationService *service.NotificationService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(
	bookingService *service.BookingService,
	requestService *service.RequestService,
	reportService *service.ReportService,
	notificationService *service.NotificationService,
) *AdminHandler {
	return &AdminHandler{
		bookingService:      bookingService,
		requestService:      requestService,
		reportService:       reportService,
		notificationService: notificationService,
	}
}

// PendingResponse carries the admin badge counters.
type PendingResponse struct {
	PendingBookings int `json:"pending_bookings"`
	PendingRequests int `json:"pending_requests"`
}

// ReportResponse is the HTTP representation of the report statistics.
type ReportResponse struct {
	Start               string            `json:"start"`
	End                 string            `json:"end"`
	Revenue             int64             `json:"revenue"`
	TotalConfirmedSeats int               `json:"total_confirmed_seats"`
	AveragePrice        float64           `json:"average_price"`
	CancelRate          float64           `json:"cancel_rate"`
	TotalBookings       int               `json:"total_bookings"`
	TotalRequests       int               `json:"total_requests"`
	TotalDrivers        int               `json:"total_drivers"`
	TotalVehicles       int               `json:"total_vehicles"`
	Bookings            []BookingResponse `json:"bookings"`
}

// NotificationResponse is the HTTP representation of a notification.
type NotificationResponse struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data,omitempty"`
	CreatedAt string         `json:"created_at"`
	ExpiresAt string         `json:"expires_at"`
}

// Pending handles GET /v1/admin/pending
func (h *AdminHandler) Pending(c *gin.Context) {
	ctx := c.Request.Context()
	respondJSON(c, http.StatusOK, PendingResponse{
		PendingBookings: h.bookingService.PendingCount(ctx),
		PendingRequests: h.requestService.PendingCount(ctx),
	})
}

// Report handles GET /v1/reports?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *AdminHandler) Report(c *gin.Context) {
	def := h.reportService.DefaultRange()
	r, err := service.ParseDateRange(c.Query("start"), c.Query("end"), def, def.Start.Location())
	if err != nil {
		respondError(c, err)
		return
	}

	stats, err := h.reportService.Report(c.Request.Context(), r)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, ReportResponse{
		Start:               stats.Range.Start.Format(domain.DateLayout),
		End:                 stats.Range.End.Format(domain.DateLayout),
		Revenue:             stats.Revenue,
		TotalConfirmedSeats: stats.TotalConfirmedSeats,
		AveragePrice:        stats.AveragePrice,
		CancelRate:          stats.CancelRate,
		TotalBookings:       stats.TotalBookings,
		TotalRequests:       stats.TotalRequests,
		TotalDrivers:        stats.TotalDrivers,
		TotalVehicles:       stats.TotalVehicles,
		Bookings:            toBookingResponses(stats.Bookings),
	})
}

// ListNotifications handles GET /v1/notifications
func (h *AdminHandler) ListNotifications(c *gin.Context) {
	active := h.notificationService.Active()

	response := make([]NotificationResponse, 0, len(active))
	for _, n := range active {
		response = append(response, NotificationResponse{
			ID:        n.ID,
			Type:      string(n.Type),
			Title:     n.Title,
			Message:   n.Message,
			Data:      n.Data,
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
			ExpiresAt: n.ExpiresAt.Format(time.RFC3339),
		})
	}
	respondJSON(c, http.StatusOK, response)
}

// DismissNotification handles DELETE /v1/notifications/:id
func (h *AdminHandler) DismissNotification(c *gin.Context) {
	if !h.notificationService.Dismiss(c.Param("id")) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "notification not showing"})
		return
	}
	c.Status(http.StatusNoContent)
}
