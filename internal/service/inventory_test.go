package service

import (
	"errors"
	"testing"

	"xeghep/internal/domain"
)

func TestConfirmSeatBooking(t *testing.T) {
	t.Parallel()

	ride := domain.Ride{ID: "r1", SeatsAvailable: 3, TotalSeats: 4}

	tests := []struct {
		name      string
		available int
		seats     int
		wantLeft  int
		wantErr   error
	}{
		{"some seats", 3, 2, 1, nil},
		{"all seats", 3, 3, 0, nil},
		{"too many", 3, 4, 3, ErrInsufficientSeats},
		{"zero", 3, 0, 3, ErrInvalidSeatCount},
		{"negative", 3, -1, 3, ErrInvalidSeatCount},
		{"fully booked", 0, 1, 0, ErrRideFullyBooked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ride
			r.SeatsAvailable = tt.available

			got, err := ConfirmSeatBooking(r, tt.seats)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if got.SeatsAvailable != tt.wantLeft {
				t.Errorf("expected %d seats left, got %d", tt.wantLeft, got.SeatsAvailable)
			}
			if got.SeatsAvailable < 0 {
				t.Error("seat count must never go negative")
			}
		})
	}
}
