package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/seminar-portal/portal-service/internal/events"
)

// Clock returns the current time; tests swap it for a fixed one
type Clock func() time.Time

func systemClock() time.Time {
	return time.Now().UTC()
}

// publishEvent never fails the caller; the mutation is already committed
func publishEvent(ctx context.Context, publisher events.EventPublisher, logger *slog.Logger, eventType string, data interface{}) {
	if publisher == nil {
		return
	}
	event := events.NewEvent(eventType, data)
	if err := publisher.Publish(ctx, event); err != nil {
		logger.WarnContext(ctx, "Failed to publish event", "event_type", eventType, "event_id", event.ID, "error", err)
	}
}
