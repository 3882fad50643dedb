package repository

import "context"

// Slot keys, one per entity collection.
const (
	SlotDrivers  = "xgv_drivers"
	SlotVehicles = "xgv_vehicles"
	SlotRides    = "xgv_rides"
	SlotBookings = "xgv_bookings"
	SlotRequests = "xgv_requests"
)

// Slots lists every collection slot in load order.
var Slots = []string{SlotDrivers, SlotVehicles, SlotRides, SlotBookings, SlotRequests}

// SlotStore persists each entity collection as one opaque value under a
// stable key.
type SlotStore interface {
	// Load returns the stored value for key.
	// Returns ErrNotFound if nothing has been saved under key.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save replaces the value stored under key.
	Save(ctx context.Context, key string, data []byte) error

	// SaveAll replaces several slots at once. Either every slot is
	// written or none is.
	SaveAll(ctx context.Context, slots map[string][]byte) error
}
