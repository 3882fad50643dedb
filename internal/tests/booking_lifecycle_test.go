package tests

import (
	"context"
	"errors"
	"sync"
	"testing"

	"xeghep/internal/domain"
	"xeghep/internal/events"
	"xeghep/internal/repository"
	"xeghep/internal/service"
	"xeghep/internal/state"
)

// ──────────────────────────────────────────────
// 1. DIRECT SEAT BOOKING
// ──────────────────────────────────────────────

func TestBookSeats_AllRemainingSeats_LeavesRideFullyBooked(t *testing.T) {
	t.Parallel()

	f := newFixture(state.Collections{Rides: []domain.Ride{testRide("r1", 3)}})

	booking, err := f.bookings.BookSeats(context.Background(), service.BookSeatsRequest{
		RideID: "r1", PassengerName: "Lê Văn Tám", PassengerPhone: "0944444444", Seats: 3,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if booking.Status != domain.BookingStatusPending {
		t.Errorf("expected pending booking, got %s", booking.Status)
	}
	if booking.RideSnapshot.Price != 150000 || booking.RideSnapshot.DriverName != "Nguyễn Văn Hùng" {
		t.Errorf("snapshot not frozen from ride: %+v", booking.RideSnapshot)
	}

	ride, err := f.rides.GetRide(context.Background(), "r1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ride.SeatsAvailable != 0 || !ride.FullyBooked() {
		t.Errorf("expected ride fully booked, seats left %d", ride.SeatsAvailable)
	}

	if got := f.rides.ListAvailable(context.Background(), ""); len(got) != 0 {
		t.Errorf("fully booked ride should not be listed, got %d rides", len(got))
	}

	_, err = f.bookings.BookSeats(context.Background(), service.BookSeatsRequest{
		RideID: "r1", PassengerName: "A", PassengerPhone: "1", Seats: 1,
	})
	if !errors.Is(err, service.ErrRideFullyBooked) {
		t.Errorf("expected ErrRideFullyBooked, got %v", err)
	}
}

func TestBookSeats_InvalidInput_LeavesStateUntouched(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		req     service.BookSeatsRequest
		wantErr error
	}{
		{
			name:    "more seats than available",
			req:     service.BookSeatsRequest{RideID: "r1", PassengerName: "A", PassengerPhone: "1", Seats: 3},
			wantErr: service.ErrInsufficientSeats,
		},
		{
			name:    "zero seats",
			req:     service.BookSeatsRequest{RideID: "r1", PassengerName: "A", PassengerPhone: "1", Seats: 0},
			wantErr: service.ErrInvalidSeatCount,
		},
		{
			name:    "missing passenger",
			req:     service.BookSeatsRequest{RideID: "r1", PassengerPhone: "1", Seats: 1},
			wantErr: service.ErrInvalidPassenger,
		},
		{
			name:    "unknown ride",
			req:     service.BookSeatsRequest{RideID: "nope", PassengerName: "A", PassengerPhone: "1", Seats: 1},
			wantErr: repository.ErrNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(state.Collections{Rides: []domain.Ride{testRide("r1", 2)}})

			_, err := f.bookings.BookSeats(context.Background(), tc.req)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}

			if got := f.store.Rides()[0].SeatsAvailable; got != 2 {
				t.Errorf("seats should be unchanged, got %d", got)
			}
			if got := len(f.store.Bookings()); got != 0 {
				t.Errorf("no booking should be recorded, got %d", got)
			}
			if n := f.slots.SaveAllCallCount; n != 0 {
				t.Errorf("failed booking should not persist, saved %d times", n)
			}
		})
	}
}

func TestBookSeats_ConcurrentBookings_NeverOversell(t *testing.T) {
	t.Parallel()

	f := newFixture(state.Collections{Rides: []domain.Ride{testRide("r1", 3)}})

	const attempts = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			defer wg.Done()
			_, err := f.bookings.BookSeats(context.Background(), service.BookSeatsRequest{
				RideID: "r1", PassengerName: "A", PassengerPhone: "1", Seats: 1,
			})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if succeeded != 3 {
		t.Errorf("expected exactly 3 bookings, got %d", succeeded)
	}
	if got := f.store.Rides()[0].SeatsAvailable; got != 0 {
		t.Errorf("expected 0 seats left, got %d", got)
	}
	if got := len(f.store.Bookings()); got != 3 {
		t.Errorf("expected 3 bookings recorded, got %d", got)
	}
}

func TestBookSeats_PublishesAndNotifies(t *testing.T) {
	t.Parallel()

	f := newFixture(state.Collections{Rides: []domain.Ride{testRide("r1", 3)}})
	f.publisher.PublishError = errors.New("broker down")

	if _, err := f.bookings.BookSeats(context.Background(), service.BookSeatsRequest{
		RideID: "r1", PassengerName: "A", PassengerPhone: "1", Seats: 1,
	}); err != nil {
		t.Fatalf("publish failure must not fail the booking: %v", err)
	}

	types := f.publisher.Types()
	if len(types) != 1 || types[0] != events.BookingCreated {
		t.Errorf("expected one booking.created event, got %v", types)
	}
	if active := f.notifications.Active(); len(active) != 1 || active[0].Type != service.NotificationBookingCreated {
		t.Errorf("expected a booking notification, got %+v", active)
	}
}

// ──────────────────────────────────────────────
// 2. BOOKING STATUS
// ──────────────────────────────────────────────

func seededBooking(status domain.BookingStatus) state.Collections {
	ride := testRide("r1", 1)
	return state.Collections{
		Rides: []domain.Ride{ride},
		Bookings: []domain.Booking{{
			ID: "b1", RideID: "r1", PassengerName: "A", PassengerPhone: "1", Seats: 2,
			Status: status, RideSnapshot: domain.SnapshotOf(ride),
		}},
	}
}

func TestUpdateStatus_PendingTransitions(t *testing.T) {
	t.Parallel()

	for _, target := range []domain.BookingStatus{domain.BookingStatusConfirmed, domain.BookingStatusCancelled} {
		t.Run(string(target), func(t *testing.T) {
			t.Parallel()

			f := newFixture(seededBooking(domain.BookingStatusPending))

			booking, err := f.bookings.UpdateStatus(context.Background(), "b1", target)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if booking.Status != target {
				t.Errorf("expected %s, got %s", target, booking.Status)
			}

			// Seats reserved at booking time are not returned on cancel.
			if got := f.store.Rides()[0].SeatsAvailable; got != 1 {
				t.Errorf("seat count should not change, got %d", got)
			}
		})
	}
}

func TestUpdateStatus_TerminalBooking_Rejected(t *testing.T) {
	t.Parallel()

	f := newFixture(seededBooking(domain.BookingStatusCancelled))

	_, err := f.bookings.UpdateStatus(context.Background(), "b1", domain.BookingStatusConfirmed)
	if !errors.Is(err, service.ErrBookingNotPending) {
		t.Errorf("expected ErrBookingNotPending, got %v", err)
	}

	_, err = f.bookings.UpdateStatus(context.Background(), "b1", domain.BookingStatusPending)
	if !errors.Is(err, service.ErrInvalidBookingStatus) {
		t.Errorf("expected ErrInvalidBookingStatus, got %v", err)
	}
}

func TestDeleteBooking_RequiresConfirmation(t *testing.T) {
	t.Parallel()

	f := newFixture(seededBooking(domain.BookingStatusConfirmed))
	ctx := context.Background()

	if err := f.bookings.DeleteBooking(ctx, "b1", false); !errors.Is(err, service.ErrConfirmationRequired) {
		t.Fatalf("expected ErrConfirmationRequired, got %v", err)
	}
	if len(f.store.Bookings()) != 1 {
		t.Fatal("unconfirmed delete must keep the booking")
	}

	if err := f.bookings.DeleteBooking(ctx, "b1", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.store.Bookings()) != 0 {
		t.Error("expected booking removed")
	}
	if got := f.store.Rides()[0].SeatsAvailable; got != 1 {
		t.Errorf("delete should not restore seats, got %d", got)
	}

	if err := f.bookings.DeleteBooking(ctx, "b1", true); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestPendingCounters(t *testing.T) {
	t.Parallel()

	f := newFixture(state.Seed(testNow))
	ctx := context.Background()

	if got := f.bookings.PendingCount(ctx); got != 1 {
		t.Errorf("expected 1 pending booking in seed, got %d", got)
	}
	if got := f.requests.PendingCount(ctx); got != 1 {
		t.Errorf("expected 1 pending request in seed, got %d", got)
	}
}
