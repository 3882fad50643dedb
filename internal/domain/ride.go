package domain

import "time"

// RideType represents how seats on a ride are sold.
type RideType string

const (
	RideTypeShared     RideType = "Xe ghép"
	RideTypeConvenient RideType = "Tiện chuyến"
	RideTypePrivate    RideType = "Bao xe"
)

// Valid reports whether t is a known ride type.
func (t RideType) Valid() bool {
	switch t {
	case RideTypeShared, RideTypeConvenient, RideTypePrivate:
		return true
	}
	return false
}

// InitialDriverRating is assigned to every newly posted ride.
const InitialDriverRating = 5.0

// Layouts used for the date and time fields of rides, bookings and requests.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Ride is a posted, seat-shareable trip.
// Invariant: 0 <= SeatsAvailable <= TotalSeats.
type Ride struct {
	ID             string   `json:"id"`
	DriverName     string   `json:"driverName"`
	DriverPhone    string   `json:"driverPhone"`
	DriverRating   float64  `json:"driverRating"`
	Origin         string   `json:"origin"`
	Destination    string   `json:"destination"`
	Date           string   `json:"date"` // YYYY-MM-DD
	Time           string   `json:"time"` // HH:mm
	Price          int64    `json:"price"` // per seat
	SeatsAvailable int      `json:"seatsAvailable"`
	TotalSeats     int      `json:"totalSeats"`
	CarModel       string   `json:"carModel"`
	LicensePlate   string   `json:"licensePlate,omitempty"`
	Type           RideType `json:"type"`
	Description    string   `json:"description,omitempty"`
}

// FullyBooked reports whether no seat is left on the ride.
func (r Ride) FullyBooked() bool {
	return r.SeatsAvailable <= 0
}

// Departure returns the departure instant in loc. ok is false when the
// date or time fields cannot be parsed.
func (r Ride) Departure(loc *time.Location) (time.Time, bool) {
	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, r.Date+" "+r.Time, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// SearchFilters narrows the list of available rides. Zero fields match everything.
type SearchFilters struct {
	Origin      string   `json:"origin,omitempty"`
	Destination string   `json:"destination,omitempty"`
	Date        string   `json:"date,omitempty"`
	Time        string   `json:"time,omitempty"`
	Type        RideType `json:"type,omitempty"`
}

// Empty reports whether no filter field is set.
func (f SearchFilters) Empty() bool {
	return f == SearchFilters{}
}
