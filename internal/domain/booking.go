package domain

import "time"

// BookingStatus represents the current status of a booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {},
	BookingStatusCancelled: {},
}

// Valid reports whether s is a known booking status.
func (s BookingStatus) Valid() bool {
	_, ok := bookingTransitions[s]
	return ok
}

// CanTransitionTo reports whether a booking in status s may move to target.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, t := range bookingTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s BookingStatus) IsTerminal() bool {
	return len(bookingTransitions[s]) == 0
}

// RideSnapshot freezes the ride details a booking was made against.
// It is built once when the booking is created and never re-derived.
type RideSnapshot struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Price       int64  `json:"price"`
	DriverName  string `json:"driverName"`
}

// SnapshotOf captures the bookable details of a ride.
func SnapshotOf(r Ride) RideSnapshot {
	return RideSnapshot{
		Origin:      r.Origin,
		Destination: r.Destination,
		Date:        r.Date,
		Time:        r.Time,
		Price:       r.Price,
		DriverName:  r.DriverName,
	}
}

// Booking is a committed claim on seats, either against a posted ride or
// synthesized from an assigned ride request. In the latter case RideID
// holds the request id.
type Booking struct {
	ID             string        `json:"id"`
	RideID         string        `json:"rideId"`
	PassengerName  string        `json:"passengerName"`
	PassengerPhone string        `json:"passengerPhone"`
	Seats          int           `json:"seats"`
	Status         BookingStatus `json:"status"`
	CreatedAt      time.Time     `json:"createdAt"`
	RideSnapshot   RideSnapshot  `json:"rideSnapshot"`
}

// Amount is the price of all seats on the booking.
func (b Booking) Amount() int64 {
	return b.RideSnapshot.Price * int64(b.Seats)
}
