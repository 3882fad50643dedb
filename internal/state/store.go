package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"xeghep/internal/domain"
	"xeghep/internal/repository"
)

// Store is the single owner of the application's entity collections.
// Reads return copies; writes go through Update, which applies a callback
// to a private copy and swaps it in only when the callback succeeds.
type Store struct {
	mu     sync.RWMutex
	data   Collections
	slots  repository.SlotStore
	logger logrus.FieldLogger
}

// New creates a Store holding initial. Nothing is loaded from slots.
func New(slots repository.SlotStore, logger logrus.FieldLogger, initial Collections) *Store {
	return &Store{
		data:   initial.clone(),
		slots:  slots,
		logger: logger,
	}
}

// Open creates a Store and loads every collection from slots. A slot that
// is missing, unreadable or corrupt falls back to the seed data for now.
func Open(ctx context.Context, slots repository.SlotStore, logger logrus.FieldLogger, now time.Time) *Store {
	seed := Seed(now)
	s := &Store{slots: slots, logger: logger}

	s.data.Drivers = loadSlot(ctx, s, repository.SlotDrivers, seed.Drivers)
	s.data.Vehicles = loadSlot(ctx, s, repository.SlotVehicles, seed.Vehicles)
	s.data.Rides = loadSlot(ctx, s, repository.SlotRides, seed.Rides)
	s.data.Bookings = loadSlot(ctx, s, repository.SlotBookings, seed.Bookings)
	s.data.Requests = loadSlot(ctx, s, repository.SlotRequests, seed.Requests)

	return s
}

func loadSlot[T any](ctx context.Context, s *Store, key string, fallback []T) []T {
	log := s.logger.WithField("slot", key)

	data, err := s.slots.Load(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Debug("slot empty, using seed data")
		} else {
			log.WithError(err).Error("failed to load slot, using seed data")
		}
		return fallback
	}

	items, err := decodeList[T](data)
	if err != nil {
		log.WithError(err).Warn("corrupt slot, using seed data")
		return fallback
	}
	return items
}

var errNullSlot = errors.New("slot holds null")

// decodeList decodes a stored JSON array. A null payload is rejected so
// that it is never mistaken for an empty collection.
func decodeList[T any](data []byte) ([]T, error) {
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	if items == nil {
		return nil, errNullSlot
	}
	return items, nil
}

// Refresh reloads the named slots from the slot store so that writes made
// by other instances become visible. A slot that is absent keeps its
// current value. Nothing changes if any slot fails to load or decode.
func (s *Store) Refresh(ctx context.Context, keys ...string) error {
	if s.slots == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.data.clone()
	for _, key := range keys {
		data, err := s.slots.Load(ctx, key)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("refresh %s: %w", key, err)
		}
		if err := next.decode(key, data); err != nil {
			return fmt.Errorf("refresh %s: %w", key, err)
		}
	}

	s.data = next
	return nil
}

// Snapshot returns a copy of every collection.
func (s *Store) Snapshot() Collections {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.clone()
}

// Drivers returns a copy of the driver roster.
func (s *Store) Drivers() []domain.Driver {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.data.Drivers)
}

// Vehicles returns a copy of the vehicle roster.
func (s *Store) Vehicles() []domain.Vehicle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.data.Vehicles)
}

// Rides returns a copy of the posted rides.
func (s *Store) Rides() []domain.Ride {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.data.Rides)
}

// Bookings returns a copy of the booking ledger.
func (s *Store) Bookings() []domain.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.data.Bookings)
}

// Requests returns a copy of the ride requests.
func (s *Store) Requests() []domain.RideRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.data.Requests)
}

// Update runs fn against a private copy of the collections inside one
// critical section. If fn returns nil the copy becomes the live state and
// the slots it touched are saved, even if ctx is cancelled; otherwise the live state is unchanged
// and fn's error is returned. Save failures are logged, not returned.
func (s *Store) Update(ctx context.Context, fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := newTx(s.data)
	if err := fn(tx); err != nil {
		return err
	}

	s.data = tx.data
	s.persist(context.WithoutCancel(ctx), tx.dirty)
	return nil
}

func (s *Store) persist(ctx context.Context, dirty map[string]bool) {
	if len(dirty) == 0 || s.slots == nil {
		return
	}

	payloads := make(map[string][]byte, len(dirty))
	for slot := range dirty {
		data, err := s.encode(slot)
		if err != nil {
			s.logger.WithError(err).WithField("slot", slot).Error("failed to encode slot")
			continue
		}
		payloads[slot] = data
	}

	if err := s.slots.SaveAll(ctx, payloads); err != nil {
		s.logger.WithError(err).WithField("slots", len(payloads)).Error("failed to save slots")
	}
}

func (s *Store) encode(slot string) ([]byte, error) {
	switch slot {
	case repository.SlotDrivers:
		return marshalList(s.data.Drivers)
	case repository.SlotVehicles:
		return marshalList(s.data.Vehicles)
	case repository.SlotRides:
		return marshalList(s.data.Rides)
	case repository.SlotBookings:
		return marshalList(s.data.Bookings)
	case repository.SlotRequests:
		return marshalList(s.data.Requests)
	}
	return nil, errors.New("unknown slot " + slot)
}

func (c *Collections) decode(slot string, data []byte) error {
	switch slot {
	case repository.SlotDrivers:
		return decodeInto(data, &c.Drivers)
	case repository.SlotVehicles:
		return decodeInto(data, &c.Vehicles)
	case repository.SlotRides:
		return decodeInto(data, &c.Rides)
	case repository.SlotBookings:
		return decodeInto(data, &c.Bookings)
	case repository.SlotRequests:
		return decodeInto(data, &c.Requests)
	}
	return errors.New("unknown slot " + slot)
}

func decodeInto[T any](data []byte, dst *[]T) error {
	items, err := decodeList[T](data)
	if err != nil {
		return err
	}
	*dst = items
	return nil
}

// marshalList encodes items as a JSON array, never as null.
func marshalList[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	return json.Marshal(items)
}
