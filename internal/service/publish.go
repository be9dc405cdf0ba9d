package service

import (
	"context"

	"github.com/noteduco342/readgroup-backend/internal/events"
	"github.com/noteduco342/readgroup-backend/internal/logging"
)

// publish hands ev to pub. Failures are logged and otherwise ignored.
func publish(ctx context.Context, pub events.Publisher, topic, key string, ev events.Event) {
	if pub == nil {
		return
	}
	if err := pub.PublishEvent(ctx, topic, key, ev); err != nil {
		logging.FromContext(ctx).Warn("publish event failed",
			"type", ev.Type,
			"topic", topic,
			"key", key,
			"error", err,
		)
	}
}
