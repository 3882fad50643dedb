package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"xeghep/internal/domain"
	"xeghep/internal/events"
	"xeghep/internal/observability"
	"xeghep/internal/redis"
	"xeghep/internal/repository"
	"xeghep/internal/state"
)

const requestLockTTL = 10 * time.Second

// RequestService handles passenger ride requests and their assignment.
type RequestService struct {
	store               *state.Store
	lockStore           redis.LockStoreInterface
	notificationService *NotificationService
	publisher           events.Publisher
	logger              logrus.FieldLogger
	clock               func() time.Time
}

// NewRequestService creates a new RequestService. lockStore may be nil when
// a single instance owns the state; when set, assignment reloads requests
// and bookings from the slot store while holding the lock.
func NewRequestService(
	store *state.Store,
	lockStore redis.LockStoreInterface,
	notificationService *NotificationService,
	publisher events.Publisher,
	logger logrus.FieldLogger,
) *RequestService {
	return &RequestService{
		store:               store,
		lockStore:           lockStore,
		notificationService: notificationService,
		publisher:           publisher,
		logger:              logger,
		clock:               time.Now,
	}
}

// SubmitRequest contains the parameters for a quick ride request.
type SubmitRequest struct {
	PassengerName  string
	PassengerPhone string
	Origin         string
	Destination    string
	Date           string
	Time           string
	Seats          int
	Note           string
}

// Submit records a new pending ride request and alerts drivers.
func (s *RequestService) Submit(ctx context.Context, req SubmitRequest) (*domain.RideRequest, error) {
	if blank(req.PassengerName, req.PassengerPhone) {
		return nil, ErrInvalidPassenger
	}
	if blank(req.Origin, req.Destination) {
		return nil, ErrInvalidRoute
	}
	if !validSchedule(req.Date, req.Time) {
		return nil, ErrInvalidSchedule
	}
	if req.Seats < 1 {
		return nil, ErrInvalidSeatCount
	}

	request := domain.RideRequest{
		ID:             uuid.New().String(),
		PassengerName:  strings.TrimSpace(req.PassengerName),
		PassengerPhone: strings.TrimSpace(req.PassengerPhone),
		Origin:         strings.TrimSpace(req.Origin),
		Destination:    strings.TrimSpace(req.Destination),
		Date:           req.Date,
		Time:           req.Time,
		Seats:          req.Seats,
		Note:           strings.TrimSpace(req.Note),
		Status:         domain.RequestStatusPending,
		CreatedAt:      s.clock(),
	}

	err := s.store.Update(ctx, func(tx *state.Tx) error {
		tx.AddRequest(request)
		return nil
	})
	if err != nil {
		return nil, err
	}

	observability.RequestsSubmitted.Inc()
	publish(ctx, s.publisher, s.logger, events.RequestSubmitted, request.ID, request)
	if s.notificationService != nil {
		s.notificationService.NotifyRequestSubmitted(ctx, &request)
	}

	return &request, nil
}

// AssignRequestInput contains the operator's choice for a pending request.
type AssignRequestInput struct {
	RequestID   string
	DriverID    string
	VehicleID   string // optional
	AgreedPrice *int64 // optional, per seat
}

// AssignResult is the request/booking pair produced by an assignment.
type AssignResult struct {
	Request *domain.RideRequest
	Booking *domain.Booking
}

// Assign accepts a pending request with a driver and optional vehicle and
// price. The request update and the new confirmed booking are committed in
// the same state update, so an accepted request always has exactly one
// booking whose RideID is the request ID.
func (s *RequestService) Assign(ctx context.Context, in AssignRequestInput) (*AssignResult, error) {
	if in.RequestID == "" {
		return nil, ErrInvalidRequestID
	}
	if in.DriverID == "" {
		return nil, ErrInvalidDriverID
	}

	if s.lockStore != nil {
		locked, err := s.lockStore.AcquireRequestLock(ctx, in.RequestID, requestLockTTL)
		if err != nil {
			return nil, err
		}
		if !locked {
			return nil, ErrRequestLocked
		}
		defer func() {
			if err := s.lockStore.ReleaseRequestLock(ctx, in.RequestID); err != nil {
				s.logger.WithError(err).WithField("request_id", in.RequestID).Warn("failed to release request lock")
			}
		}()

		// Another instance may have assigned or cancelled the request since
		// this one loaded its state.
		if err := s.store.Refresh(ctx, repository.SlotRequests, repository.SlotBookings); err != nil {
			return nil, err
		}
	}

	var (
		request domain.RideRequest
		booking domain.Booking
	)
	err := s.store.Update(ctx, func(tx *state.Tx) error {
		current, ok := tx.Request(in.RequestID)
		if !ok {
			return fmt.Errorf("request %s: %w", in.RequestID, repository.ErrNotFound)
		}
		driver, ok := tx.Driver(in.DriverID)
		if !ok {
			return fmt.Errorf("driver %s: %w", in.DriverID, repository.ErrNotFound)
		}

		assignment := Assignment{Driver: driver, AgreedPrice: in.AgreedPrice}
		if in.VehicleID != "" {
			vehicle, ok := tx.Vehicle(in.VehicleID)
			if !ok {
				return fmt.Errorf("vehicle %s: %w", in.VehicleID, repository.ErrNotFound)
			}
			assignment.Vehicle = &vehicle
		}

		var err error
		request, booking, err = AssignRequest(current, assignment, uuid.New().String(), s.clock())
		if err != nil {
			return err
		}

		tx.PutRequest(request)
		tx.AddBooking(booking)
		return nil
	})
	if err != nil {
		return nil, err
	}

	observability.RequestOutcomes.WithLabelValues(string(request.Status)).Inc()
	observability.BookingsCreated.WithLabelValues("request").Inc()
	publish(ctx, s.publisher, s.logger, events.RequestAssigned, request.ID, AssignResult{Request: &request, Booking: &booking})
	if s.notificationService != nil {
		s.notificationService.NotifyRequestAssigned(ctx, &request)
	}

	return &AssignResult{Request: &request, Booking: &booking}, nil
}

// Cancel rejects a pending request.
func (s *RequestService) Cancel(ctx context.Context, requestID string) (*domain.RideRequest, error) {
	if requestID == "" {
		return nil, ErrInvalidRequestID
	}

	var request domain.RideRequest
	err := s.store.Update(ctx, func(tx *state.Tx) error {
		current, ok := tx.Request(requestID)
		if !ok {
			return fmt.Errorf("request %s: %w", requestID, repository.ErrNotFound)
		}

		var err error
		request, err = CancelRequest(current)
		if err != nil {
			return err
		}
		tx.PutRequest(request)
		return nil
	})
	if err != nil {
		return nil, err
	}

	observability.RequestOutcomes.WithLabelValues(string(request.Status)).Inc()
	publish(ctx, s.publisher, s.logger, events.RequestCancelled, request.ID, request)

	return &request, nil
}

// Delete removes a request in any status. confirmed must be true. A
// booking created from the request is kept.
func (s *RequestService) Delete(ctx context.Context, requestID string, confirmed bool) error {
	if requestID == "" {
		return ErrInvalidRequestID
	}
	if !confirmed {
		return ErrConfirmationRequired
	}

	err := s.store.Update(ctx, func(tx *state.Tx) error {
		if !tx.RemoveRequest(requestID) {
			return fmt.Errorf("request %s: %w", requestID, repository.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return err
	}

	publish(ctx, s.publisher, s.logger, events.RequestDeleted, requestID, nil)
	return nil
}

// ListRequests returns every ride request, newest first.
func (s *RequestService) ListRequests(ctx context.Context) []domain.RideRequest {
	return s.store.Requests()
}

// PendingCount returns how many requests still wait for a driver.
func (s *RequestService) PendingCount(ctx context.Context) int {
	n := 0
	for _, r := range s.store.Requests() {
		if r.Status == domain.RequestStatusPending {
			n++
		}
	}
	return n
}
