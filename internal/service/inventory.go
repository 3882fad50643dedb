package service

import (
	"fmt"

	"xeghep/internal/domain"
)

// ConfirmSeatBooking returns ride with seats removed from its inventory.
// seats must be between 1 and ride.SeatsAvailable; the returned ride never
// has a negative seat count. It does not create a booking.
func ConfirmSeatBooking(ride domain.Ride, seats int) (domain.Ride, error) {
	if seats < 1 {
		return ride, ErrInvalidSeatCount
	}
	if ride.FullyBooked() {
		return ride, ErrRideFullyBooked
	}
	if seats > ride.SeatsAvailable {
		return ride, fmt.Errorf("%w: requested %d, available %d", ErrInsufficientSeats, seats, ride.SeatsAvailable)
	}

	ride.SeatsAvailable -= seats
	return ride, nil
}
