package service

import "errors"

var (
	// ErrInvalidRideID is returned when ride ID is empty.
	ErrInvalidRideID = errors.New("invalid ride id")

	// ErrInvalidBookingID is returned when booking ID is empty.
	ErrInvalidBookingID = errors.New("invalid booking id")

	// ErrInvalidRequestID is returned when request ID is empty.
	ErrInvalidRequestID = errors.New("invalid request id")

	// ErrInvalidDriverID is returned when driver ID is empty.
	ErrInvalidDriverID = errors.New("invalid driver id")

	// ErrInvalidVehicleID is returned when vehicle ID is empty.
	ErrInvalidVehicleID = errors.New("invalid vehicle id")

	// ErrInvalidPassenger is returned when passenger name or phone is missing.
	ErrInvalidPassenger = errors.New("passenger name and phone are required")

	// ErrInvalidDriver is returned when driver name or phone is missing.
	ErrInvalidDriver = errors.New("driver name and phone are required")

	// ErrInvalidVehicle is returned when vehicle model or license plate is missing.
	ErrInvalidVehicle = errors.New("vehicle model and license plate are required")

	// ErrInvalidRoute is returned when origin or destination is missing.
	ErrInvalidRoute = errors.New("origin and destination are required")

	// ErrInvalidSchedule is returned when date or time is missing or malformed.
	ErrInvalidSchedule = errors.New("date must be YYYY-MM-DD and time HH:mm")

	// ErrInvalidSeatCount is returned when a seat count is below one or
	// exceeds the ride's capacity.
	ErrInvalidSeatCount = errors.New("invalid seat count")

	// ErrInvalidPrice is returned when a price is negative.
	ErrInvalidPrice = errors.New("invalid price")

	// ErrInvalidRideType is returned when ride type is not recognized.
	ErrInvalidRideType = errors.New("invalid ride type")

	// ErrRideFullyBooked is returned when a ride has no seat left.
	ErrRideFullyBooked = errors.New("ride fully booked")

	// ErrInsufficientSeats is returned when more seats are requested than are available.
	ErrInsufficientSeats = errors.New("not enough seats available")

	// ErrRequestNotPending is returned when assigning or cancelling a request
	// that already reached a terminal state.
	ErrRequestNotPending = errors.New("ride request not pending")

	// ErrRequestLocked is returned when another assignment of the same request is in flight.
	ErrRequestLocked = errors.New("ride request is being assigned")

	// ErrBookingNotPending is returned when changing the status of a
	// confirmed or cancelled booking.
	ErrBookingNotPending = errors.New("booking not pending")

	// ErrInvalidBookingStatus is returned when the target booking status is not confirmed or cancelled.
	ErrInvalidBookingStatus = errors.New("invalid booking status")

	// ErrConfirmationRequired is returned when a destructive action is not explicitly confirmed.
	ErrConfirmationRequired = errors.New("deletion must be confirmed")

	// ErrInvalidDateRange is returned when a report range is malformed or starts after it ends.
	ErrInvalidDateRange = errors.New("invalid date range")
)
