package service

import (
	"time"

	"xeghep/internal/domain"
)

// Assignment is what an operator supplies to accept a ride request.
type Assignment struct {
	Driver      domain.Driver
	Vehicle     *domain.Vehicle // optional
	AgreedPrice *int64          // per seat; nil means not negotiated yet
}

// AssignRequest accepts a pending request and materializes its booking.
// The returned request is accepted and carries the assignment; the returned
// booking is confirmed, links back through RideID = request ID, and freezes
// the route, the agreed price and the driver's name.
func AssignRequest(req domain.RideRequest, a Assignment, bookingID string, now time.Time) (domain.RideRequest, domain.Booking, error) {
	if req.Status != domain.RequestStatusPending {
		return req, domain.Booking{}, ErrRequestNotPending
	}
	if a.Driver.ID == "" || a.Driver.Name == "" {
		return req, domain.Booking{}, ErrInvalidDriverID
	}

	var price int64
	if a.AgreedPrice != nil {
		price = *a.AgreedPrice
	}
	if price < 0 {
		return req, domain.Booking{}, ErrInvalidPrice
	}

	updated := req
	updated.Status = domain.RequestStatusAccepted
	updated.AssignedDriverID = a.Driver.ID
	updated.AssignedDriverName = a.Driver.Name
	updated.AssignedDriverPhone = a.Driver.Phone
	updated.AssignedVehicleInfo = ""
	if a.Vehicle != nil {
		updated.AssignedVehicleInfo = a.Vehicle.Info()
	}
	updated.AgreedPrice = &price

	booking := domain.Booking{
		ID:             bookingID,
		RideID:         req.ID,
		PassengerName:  req.PassengerName,
		PassengerPhone: req.PassengerPhone,
		Seats:          req.Seats,
		Status:         domain.BookingStatusConfirmed,
		CreatedAt:      now,
		RideSnapshot: domain.RideSnapshot{
			Origin:      req.Origin,
			Destination: req.Destination,
			Date:        req.Date,
			Time:        req.Time,
			Price:       price,
			DriverName:  a.Driver.Name,
		},
	}

	return updated, booking, nil
}

// CancelRequest rejects a pending request. No booking is touched.
func CancelRequest(req domain.RideRequest) (domain.RideRequest, error) {
	if req.Status != domain.RequestStatusPending {
		return req, ErrRequestNotPending
	}
	req.Status = domain.RequestStatusCancelled
	return req, nil
}
