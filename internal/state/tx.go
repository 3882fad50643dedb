package state

import (
	"xeghep/internal/domain"
	"xeghep/internal/repository"
)

// Tx is a private, mutable view of the collections handed to an Update
// callback. Every mutator records the slot it touched so only those slots
// are persisted on commit.
type Tx struct {
	data  Collections
	dirty map[string]bool
}

func newTx(data Collections) *Tx {
	return &Tx{data: data.clone(), dirty: make(map[string]bool)}
}

func (tx *Tx) touch(slot string) {
	tx.dirty[slot] = true
}

// Drivers returns the drivers visible to the transaction.
func (tx *Tx) Drivers() []domain.Driver { return tx.data.Drivers }

// Driver looks up a driver by id.
func (tx *Tx) Driver(id string) (domain.Driver, bool) {
	i := indexOf(tx.data.Drivers, func(d domain.Driver) bool { return d.ID == id })
	if i < 0 {
		return domain.Driver{}, false
	}
	return tx.data.Drivers[i], true
}

// AddDriver appends a driver to the roster.
func (tx *Tx) AddDriver(d domain.Driver) {
	tx.data.Drivers = append(tx.data.Drivers, d)
	tx.touch(repository.SlotDrivers)
}

// RemoveDriver deletes the driver with id. Bookings and requests that
// reference the driver by name or phone are left untouched.
func (tx *Tx) RemoveDriver(id string) bool {
	i := indexOf(tx.data.Drivers, func(d domain.Driver) bool { return d.ID == id })
	if i < 0 {
		return false
	}
	tx.data.Drivers = removeAt(tx.data.Drivers, i)
	tx.touch(repository.SlotDrivers)
	return true
}

// Vehicles returns the vehicles visible to the transaction.
func (tx *Tx) Vehicles() []domain.Vehicle { return tx.data.Vehicles }

// Vehicle looks up a vehicle by id.
func (tx *Tx) Vehicle(id string) (domain.Vehicle, bool) {
	i := indexOf(tx.data.Vehicles, func(v domain.Vehicle) bool { return v.ID == id })
	if i < 0 {
		return domain.Vehicle{}, false
	}
	return tx.data.Vehicles[i], true
}

// AddVehicle appends a vehicle to the roster.
func (tx *Tx) AddVehicle(v domain.Vehicle) {
	tx.data.Vehicles = append(tx.data.Vehicles, v)
	tx.touch(repository.SlotVehicles)
}

// RemoveVehicle deletes the vehicle with id.
func (tx *Tx) RemoveVehicle(id string) bool {
	i := indexOf(tx.data.Vehicles, func(v domain.Vehicle) bool { return v.ID == id })
	if i < 0 {
		return false
	}
	tx.data.Vehicles = removeAt(tx.data.Vehicles, i)
	tx.touch(repository.SlotVehicles)
	return true
}

// Ride looks up a posted ride by id.
func (tx *Tx) Ride(id string) (domain.Ride, bool) {
	i := indexOf(tx.data.Rides, func(r domain.Ride) bool { return r.ID == id })
	if i < 0 {
		return domain.Ride{}, false
	}
	return tx.data.Rides[i], true
}

// AddRide puts a new ride at the front of the list.
func (tx *Tx) AddRide(r domain.Ride) {
	tx.data.Rides = prepend(tx.data.Rides, r)
	tx.touch(repository.SlotRides)
}

// PutRide replaces the stored ride with the same id.
func (tx *Tx) PutRide(r domain.Ride) bool {
	i := indexOf(tx.data.Rides, func(x domain.Ride) bool { return x.ID == r.ID })
	if i < 0 {
		return false
	}
	tx.data.Rides[i] = r
	tx.touch(repository.SlotRides)
	return true
}

// Booking looks up a booking by id.
func (tx *Tx) Booking(id string) (domain.Booking, bool) {
	i := indexOf(tx.data.Bookings, func(b domain.Booking) bool { return b.ID == id })
	if i < 0 {
		return domain.Booking{}, false
	}
	return tx.data.Bookings[i], true
}

// AddBooking puts a new booking at the front of the list.
func (tx *Tx) AddBooking(b domain.Booking) {
	tx.data.Bookings = prepend(tx.data.Bookings, b)
	tx.touch(repository.SlotBookings)
}

// PutBooking replaces the stored booking with the same id.
func (tx *Tx) PutBooking(b domain.Booking) bool {
	i := indexOf(tx.data.Bookings, func(x domain.Booking) bool { return x.ID == b.ID })
	if i < 0 {
		return false
	}
	tx.data.Bookings[i] = b
	tx.touch(repository.SlotBookings)
	return true
}

// RemoveBooking deletes the booking with id.
func (tx *Tx) RemoveBooking(id string) bool {
	i := indexOf(tx.data.Bookings, func(b domain.Booking) bool { return b.ID == id })
	if i < 0 {
		return false
	}
	tx.data.Bookings = removeAt(tx.data.Bookings, i)
	tx.touch(repository.SlotBookings)
	return true
}

// Request looks up a ride request by id.
func (tx *Tx) Request(id string) (domain.RideRequest, bool) {
	i := indexOf(tx.data.Requests, func(r domain.RideRequest) bool { return r.ID == id })
	if i < 0 {
		return domain.RideRequest{}, false
	}
	return tx.data.Requests[i], true
}

// AddRequest puts a new ride request at the front of the list.
func (tx *Tx) AddRequest(r domain.RideRequest) {
	tx.data.Requests = prepend(tx.data.Requests, r)
	tx.touch(repository.SlotRequests)
}

// PutRequest replaces the stored request with the same id.
func (tx *Tx) PutRequest(r domain.RideRequest) bool {
	i := indexOf(tx.data.Requests, func(x domain.RideRequest) bool { return x.ID == r.ID })
	if i < 0 {
		return false
	}
	tx.data.Requests[i] = r
	tx.touch(repository.SlotRequests)
	return true
}

// RemoveRequest deletes the request with id.
func (tx *Tx) RemoveRequest(id string) bool {
	i := indexOf(tx.data.Requests, func(r domain.RideRequest) bool { return r.ID == id })
	if i < 0 {
		return false
	}
	tx.data.Requests = removeAt(tx.data.Requests, i)
	tx.touch(repository.SlotRequests)
	return true
}
