package tests

import (
	"context"
	"errors"
	"testing"

	"xeghep/internal/domain"
	"xeghep/internal/repository"
	"xeghep/internal/service"
	"xeghep/internal/state"
)

func TestPersistence_ReopenRestoresCommittedState(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	slots := NewMockSlotStore()
	logger := quietLogger()

	store := state.Open(ctx, slots, logger, testNow)
	bookings := service.NewBookingService(store, nil, nil, logger)

	booking, err := bookings.BookSeats(ctx, service.BookSeatsRequest{
		RideID: "3", PassengerName: "A", PassengerPhone: "1", Seats: 2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reopened := state.Open(ctx, slots, logger, testNow)

	var ride domain.Ride
	for _, r := range reopened.Rides() {
		if r.ID == "3" {
			ride = r
		}
	}
	if ride.SeatsAvailable != 2 {
		t.Errorf("expected 2 seats after reopen, got %d", ride.SeatsAvailable)
	}

	found := false
	for _, b := range reopened.Bookings() {
		if b.ID == booking.ID {
			found = true
		}
	}
	if !found {
		t.Error("booking should survive reopen")
	}

	// Only the two touched slots were written.
	if _, err := slots.Load(ctx, repository.SlotDrivers); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("untouched slot should not be written, got %v", err)
	}
}

func TestPersistence_SaveFailure_KeepsInMemoryState(t *testing.T) {
	t.Parallel()

	f := newFixture(state.Collections{Rides: []domain.Ride{testRide("r1", 3)}})
	f.slots.SaveAllError = errors.New("disk full")

	if _, err := f.bookings.BookSeats(context.Background(), service.BookSeatsRequest{
		RideID: "r1", PassengerName: "A", PassengerPhone: "1", Seats: 1,
	}); err != nil {
		t.Fatalf("save failure must not fail the operation: %v", err)
	}

	if got := f.store.Rides()[0].SeatsAvailable; got != 2 {
		t.Errorf("expected in-memory seats 2, got %d", got)
	}
	if f.slots.SaveAllCallCount != 1 {
		t.Errorf("expected one save attempt, got %d", f.slots.SaveAllCallCount)
	}
}
