// Package events publishes domain events for other services to consume.
// Publishing is fire-and-forget from the caller's point of view: failures are
// logged and never change the outcome of the operation that produced them.
package events

import (
	"context"
	"time"
)

const (
	TopicUsers    = "user_events"
	TopicGroups   = "group_events"
	TopicReads    = "read_events"
	TopicMessages = "message_events"
)

const (
	TypeUserCreated     = "user_created"
	TypeGroupCreated    = "group_created"
	TypeGroupJoined     = "group_joined"
	TypeReadCreated     = "read_created"
	TypeReadDeleted     = "read_deleted"
	TypeMessageCreated  = "message_created"
	TypeProgressUpdated = "progress_updated"
)

type Event struct {
	Type       string            `json:"type"`
	EntityID   string            `json:"entityId"`
	ActorID    string            `json:"actorId,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	OccurredAt time.Time         `json:"occurredAt"`
}

func New(eventType, entityID, actorID string) Event {
	return Event{
		Type:       eventType,
		EntityID:   entityID,
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
	}
}

func (e Event) With(key, value string) Event {
	attrs := make(map[string]string, len(e.Attributes)+1)
	for k, v := range e.Attributes {
		attrs[k] = v
	}
	attrs[key] = value
	e.Attributes = attrs
	return e
}

type Publisher interface {
	PublishEvent(ctx context.Context, topic, key string, event Event) error
	Close() error
}

// Noop discards every event. It is used when no broker is configured.
type Noop struct{}

func (Noop) PublishEvent(context.Context, string, string, Event) error { return nil }
func (Noop) Close() error                                              { return nil }
