package state

import "xeghep/internal/domain"

// Collections is the full set of entity collections owned by the Store.
type Collections struct {
	Drivers  []domain.Driver
	Vehicles []domain.Vehicle
	Rides    []domain.Ride
	Bookings []domain.Booking
	Requests []domain.RideRequest
}

// clone returns a copy whose slices can be modified without affecting c.
func (c Collections) clone() Collections {
	return Collections{
		Drivers:  cloneSlice(c.Drivers),
		Vehicles: cloneSlice(c.Vehicles),
		Rides:    cloneSlice(c.Rides),
		Bookings: cloneSlice(c.Bookings),
		Requests: cloneSlice(c.Requests),
	}
}

func cloneSlice[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}

func indexOf[T any](items []T, match func(T) bool) int {
	for i, item := range items {
		if match(item) {
			return i
		}
	}
	return -1
}

func removeAt[T any](items []T, i int) []T {
	return append(items[:i], items[i+1:]...)
}

func prepend[T any](items []T, item T) []T {
	return append([]T{item}, items...)
}
