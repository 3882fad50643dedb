package events

import (
	"context"
	"time"
)

// Type names a lifecycle event.
type Type string

const (
	BookingCreated       Type = "booking.created"
	BookingStatusChanged Type = "booking.status_changed"
	BookingDeleted       Type = "booking.deleted"
	RequestSubmitted     Type = "request.submitted"
	RequestAssigned      Type = "request.assigned"
	RequestCancelled     Type = "request.cancelled"
	RequestDeleted       Type = "request.deleted"
)

// Event is a lifecycle change of a booking or ride request.
type Event struct {
	Type       Type      `json:"type"`
	EntityID   string    `json:"entity_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload,omitempty"`
}

// Publisher delivers events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, event Event) error { return nil }
func (NopPublisher) Close() error                                   { return nil }
