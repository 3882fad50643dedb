package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"xeghep/internal/domain"
)

// DefaultNotificationDisplay is how long a notification stays up before it
// dismisses itself.
const DefaultNotificationDisplay = 6 * time.Second

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationRequestSubmitted NotificationType = "REQUEST_SUBMITTED"
	NotificationRequestAssigned  NotificationType = "REQUEST_ASSIGNED"
	NotificationBookingCreated   NotificationType = "BOOKING_CREATED"
)

// Notification is a simulated push message shown in the driver app.
type Notification struct {
	ID        string
	Type      NotificationType
	Title     string
	Message   string
	Data      map[string]any
	CreatedAt time.Time
	ExpiresAt time.Time
}

// NotificationService raises simulated push notifications. Each one is
// displayed for a fixed duration and then dismissed by its own timer.
type NotificationService struct {
	mu      sync.Mutex
	active  map[string]*activeNotification
	display time.Duration
	logger  logrus.FieldLogger
}

type activeNotification struct {
	Notification
	timer *time.Timer
}

// NewNotificationService creates a NotificationService. A non-positive
// display duration falls back to DefaultNotificationDisplay.
func NewNotificationService(display time.Duration, logger logrus.FieldLogger) *NotificationService {
	if display <= 0 {
		display = DefaultNotificationDisplay
	}
	return &NotificationService{
		active:  make(map[string]*activeNotification),
		display: display,
		logger:  logger,
	}
}

// Push shows n and schedules its auto-dismiss. It never blocks on delivery.
func (s *NotificationService) Push(ctx context.Context, n Notification) Notification {
	n.ID = uuid.New().String()
	n.CreatedAt = time.Now()
	n.ExpiresAt = n.CreatedAt.Add(s.display)

	s.mu.Lock()
	entry := &activeNotification{Notification: n}
	entry.timer = time.AfterFunc(s.display, func() { s.expire(n.ID) })
	s.active[n.ID] = entry
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"notification_id": n.ID,
		"type":            n.Type,
		"title":           n.Title,
	}).Info(n.Message)

	return n
}

// Dismiss removes a notification before its timer fires. The pending
// auto-dismiss is stopped; nothing else happens. Returns false if the
// notification is no longer showing.
func (s *NotificationService) Dismiss(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.active[id]
	if !ok {
		return false
	}
	entry.timer.Stop()
	delete(s.active, id)
	return true
}

// Active returns the notifications currently showing, oldest first.
func (s *NotificationService) Active() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Notification, 0, len(s.active))
	for _, entry := range s.active {
		out = append(out, entry.Notification)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// expire is the timer callback; a late fire after Dismiss is a no-op.
func (s *NotificationService) expire(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.active, id)
}

// NotifyRequestSubmitted tells drivers about a new ride request.
func (s *NotificationService) NotifyRequestSubmitted(ctx context.Context, req *domain.RideRequest) Notification {
	return s.Push(ctx, Notification{
		Type:    NotificationRequestSubmitted,
		Title:   "Khách mới: " + req.PassengerName,
		Message: fmt.Sprintf("%s → %s lúc %s %s, cần %d ghế", req.Origin, req.Destination, req.Time, req.Date, req.Seats),
		Data: map[string]any{
			"request_id": req.ID,
			"seats":      req.Seats,
		},
	})
}

// NotifyRequestAssigned tells the passenger that a driver took the request.
func (s *NotificationService) NotifyRequestAssigned(ctx context.Context, req *domain.RideRequest) Notification {
	return s.Push(ctx, Notification{
		Type:    NotificationRequestAssigned,
		Title:   "Đã có tài xế nhận",
		Message: fmt.Sprintf("Tài xế %s (%s) sẽ đón %s", req.AssignedDriverName, req.AssignedDriverPhone, req.PassengerName),
		Data: map[string]any{
			"request_id": req.ID,
			"driver_id":  req.AssignedDriverID,
		},
	})
}

// NotifyBookingCreated tells the ride's driver that seats were booked.
func (s *NotificationService) NotifyBookingCreated(ctx context.Context, b *domain.Booking) Notification {
	return s.Push(ctx, Notification{
		Type:    NotificationBookingCreated,
		Title:   "Đặt vé mới",
		Message: fmt.Sprintf("Tài xế %s sẽ liên hệ với %s (%s)", b.RideSnapshot.DriverName, b.PassengerName, b.PassengerPhone),
		Data: map[string]any{
			"booking_id": b.ID,
			"ride_id":    b.RideID,
			"seats":      b.Seats,
		},
	})
}
