package service

import (
	"errors"
	"testing"
	"time"

	"xeghep/internal/domain"
)

func pendingRequest() domain.RideRequest {
	return domain.RideRequest{
		ID: "q1", PassengerName: "Lan", PassengerPhone: "0911", Origin: "Bù Đăng",
		Destination: "Sài Gòn", Date: "2024-05-20", Time: "05:00", Seats: 3,
		Status: domain.RequestStatusPending,
	}
}

func TestAssignRequest(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 19, 8, 0, 0, 0, time.UTC)
	price := int64(120000)
	vehicle := domain.Vehicle{Model: "Kia Sedona", LicensePlate: "51H-999.99"}

	req, booking, err := AssignRequest(pendingRequest(), Assignment{
		Driver:      domain.Driver{ID: "d3", Name: "Mai", Phone: "0909"},
		Vehicle:     &vehicle,
		AgreedPrice: &price,
	}, "bk", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if req.Status != domain.RequestStatusAccepted || req.AssignedDriverID != "d3" || req.AssignedDriverPhone != "0909" {
		t.Errorf("unexpected request %+v", req)
	}
	if req.AssignedVehicleInfo != "Kia Sedona (51H-999.99)" {
		t.Errorf("unexpected vehicle info %q", req.AssignedVehicleInfo)
	}
	if booking.ID != "bk" || booking.RideID != "q1" || booking.Status != domain.BookingStatusConfirmed {
		t.Errorf("unexpected booking %+v", booking)
	}
	if !booking.CreatedAt.Equal(now) {
		t.Errorf("expected createdAt %v, got %v", now, booking.CreatedAt)
	}
	if booking.Amount() != 360000 {
		t.Errorf("expected amount 360000, got %d", booking.Amount())
	}

	if _, _, err := AssignRequest(req, Assignment{Driver: domain.Driver{ID: "d3", Name: "Mai"}}, "bk2", now); !errors.Is(err, ErrRequestNotPending) {
		t.Errorf("expected ErrRequestNotPending on accepted request, got %v", err)
	}
}

func TestAssignRequest_RequiresDriver(t *testing.T) {
	t.Parallel()

	_, _, err := AssignRequest(pendingRequest(), Assignment{}, "bk", time.Now())
	if !errors.Is(err, ErrInvalidDriverID) {
		t.Errorf("expected ErrInvalidDriverID, got %v", err)
	}
}

func TestCancelRequest(t *testing.T) {
	t.Parallel()

	got, err := CancelRequest(pendingRequest())
	if err != nil || got.Status != domain.RequestStatusCancelled {
		t.Fatalf("expected cancelled, got %s (%v)", got.Status, err)
	}
	if _, err := CancelRequest(got); !errors.Is(err, ErrRequestNotPending) {
		t.Errorf("expected ErrRequestNotPending, got %v", err)
	}
}
