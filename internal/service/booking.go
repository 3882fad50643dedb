package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"xeghep/internal/domain"
	"xeghep/internal/events"
	"xeghep/internal/observability"
	"xeghep/internal/repository"
	"xeghep/internal/state"
)

// BookingService handles direct seat bookings against posted rides.
type BookingService struct {
	store               *state.Store
	notificationService *NotificationService
	publisher           events.Publisher
	logger              logrus.FieldLogger
	clock               func() time.Time
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	store *state.Store,
	notificationService *NotificationService,
	publisher events.Publisher,
	logger logrus.FieldLogger,
) *BookingService {
	return &BookingService{
		store:               store,
		notificationService: notificationService,
		publisher:           publisher,
		logger:              logger,
		clock:               time.Now,
	}
}

// BookSeatsRequest contains the parameters for booking seats on a ride.
type BookSeatsRequest struct {
	RideID         string
	PassengerName  string
	PassengerPhone string
	Seats          int
}

// BookSeats reserves seats on a ride and records a pending booking.
// Seats are taken from the ride immediately, before any operator
// confirmation, and both writes are committed together.
func (s *BookingService) BookSeats(ctx context.Context, req BookSeatsRequest) (*domain.Booking, error) {
	if req.RideID == "" {
		return nil, ErrInvalidRideID
	}
	if blank(req.PassengerName, req.PassengerPhone) {
		return nil, ErrInvalidPassenger
	}
	if req.Seats < 1 {
		return nil, ErrInvalidSeatCount
	}

	var booking domain.Booking
	err := s.store.Update(ctx, func(tx *state.Tx) error {
		ride, ok := tx.Ride(req.RideID)
		if !ok {
			return fmt.Errorf("ride %s: %w", req.RideID, repository.ErrNotFound)
		}

		updated, err := ConfirmSeatBooking(ride, req.Seats)
		if err != nil {
			return err
		}

		booking = domain.Booking{
			ID:             uuid.New().String(),
			RideID:         ride.ID,
			PassengerName:  req.PassengerName,
			PassengerPhone: req.PassengerPhone,
			Seats:          req.Seats,
			Status:         domain.BookingStatusPending,
			CreatedAt:      s.clock(),
			RideSnapshot:   domain.SnapshotOf(ride),
		}

		tx.PutRide(updated)
		tx.AddBooking(booking)
		return nil
	})
	if err != nil {
		return nil, err
	}

	observability.SeatsReserved.Add(float64(booking.Seats))
	observability.BookingsCreated.WithLabelValues("ride").Inc()
	publish(ctx, s.publisher, s.logger, events.BookingCreated, booking.ID, booking)
	if s.notificationService != nil {
		s.notificationService.NotifyBookingCreated(ctx, &booking)
	}

	return &booking, nil
}

// UpdateStatus confirms or cancels a pending booking. Seat counts are not
// adjusted: seats were reserved when the booking was made and a
// cancellation does not return them.
func (s *BookingService) UpdateStatus(ctx context.Context, bookingID string, status domain.BookingStatus) (*domain.Booking, error) {
	if bookingID == "" {
		return nil, ErrInvalidBookingID
	}
	if status != domain.BookingStatusConfirmed && status != domain.BookingStatusCancelled {
		return nil, ErrInvalidBookingStatus
	}

	var booking domain.Booking
	err := s.store.Update(ctx, func(tx *state.Tx) error {
		var ok bool
		booking, ok = tx.Booking(bookingID)
		if !ok {
			return fmt.Errorf("booking %s: %w", bookingID, repository.ErrNotFound)
		}
		if !booking.Status.CanTransitionTo(status) {
			return ErrBookingNotPending
		}

		booking.Status = status
		tx.PutBooking(booking)
		return nil
	})
	if err != nil {
		return nil, err
	}

	observability.BookingTransition.WithLabelValues(string(status)).Inc()
	publish(ctx, s.publisher, s.logger, events.BookingStatusChanged, booking.ID, booking)

	return &booking, nil
}

// DeleteBooking removes a booking regardless of status. confirmed must be
// true; there is no undo.
func (s *BookingService) DeleteBooking(ctx context.Context, bookingID string, confirmed bool) error {
	if bookingID == "" {
		return ErrInvalidBookingID
	}
	if !confirmed {
		return ErrConfirmationRequired
	}

	err := s.store.Update(ctx, func(tx *state.Tx) error {
		if !tx.RemoveBooking(bookingID) {
			return fmt.Errorf("booking %s: %w", bookingID, repository.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return err
	}

	publish(ctx, s.publisher, s.logger, events.BookingDeleted, bookingID, nil)
	return nil
}

// GetBooking retrieves a booking by ID.
func (s *BookingService) GetBooking(ctx context.Context, bookingID string) (*domain.Booking, error) {
	if bookingID == "" {
		return nil, ErrInvalidBookingID
	}
	for _, b := range s.store.Bookings() {
		if b.ID == bookingID {
			return &b, nil
		}
	}
	return nil, fmt.Errorf("booking %s: %w", bookingID, repository.ErrNotFound)
}

// ListBookings returns every booking, newest first.
func (s *BookingService) ListBookings(ctx context.Context) []domain.Booking {
	return s.store.Bookings()
}

// PendingCount returns how many bookings still wait for an operator.
func (s *BookingService) PendingCount(ctx context.Context) int {
	n := 0
	for _, b := range s.store.Bookings() {
		if b.Status == domain.BookingStatusPending {
			n++
		}
	}
	return n
}
