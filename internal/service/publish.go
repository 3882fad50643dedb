package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"xeghep/internal/events"
)

// publish hands an event to p and logs, never returns, a delivery failure.
func publish(ctx context.Context, p events.Publisher, logger logrus.FieldLogger, typ events.Type, id string, payload any) {
	if p == nil {
		return
	}
	err := p.Publish(ctx, events.Event{
		Type:       typ,
		EntityID:   id,
		OccurredAt: time.Now(),
		Payload:    payload,
	})
	if err != nil {
		logger.WithError(err).WithFields(logrus.Fields{"event": typ, "entity_id": id}).Warn("failed to publish event")
	}
}
