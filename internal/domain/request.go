package domain

import "time"

// RequestStatus represents the current status of a ride request.
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusAccepted  RequestStatus = "accepted"
	RequestStatusCancelled RequestStatus = "cancelled"
)

// IsTerminal reports whether the request can no longer change status.
func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusAccepted || s == RequestStatusCancelled
}

// RideRequest is a passenger's open ask that has not been matched to a ride.
type RideRequest struct {
	ID             string        `json:"id"`
	PassengerName  string        `json:"passengerName"`
	PassengerPhone string        `json:"passengerPhone"`
	Origin         string        `json:"origin"`
	Destination    string        `json:"destination"`
	Date           string        `json:"date"`
	Time           string        `json:"time"`
	Seats          int           `json:"seats"`
	Note           string        `json:"note,omitempty"`
	Status         RequestStatus `json:"status"`
	CreatedAt      time.Time     `json:"createdAt"`

	AssignedDriverID    string `json:"assignedDriverId,omitempty"`
	AssignedDriverName  string `json:"assignedDriverName,omitempty"`
	AssignedDriverPhone string `json:"assignedDriverPhone,omitempty"`
	AssignedVehicleInfo string `json:"assignedVehicleInfo,omitempty"`
	AgreedPrice         *int64 `json:"agreedPrice,omitempty"`
}
