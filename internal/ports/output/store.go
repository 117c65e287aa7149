package output

import (
	"context"

	"rafflebot/internal/domain/entities"
)

// EventStore is the durable mapping from event id to event record. Put is
// an upsert and must be visible to a Get issued after a process restart.
// Single-id atomicity is the caller's job (per-id serialization); the store
// only promises durability per Put.
type EventStore interface {
	Put(ctx context.Context, event *entities.TimedEvent) error
	// Get returns domain.ErrEventNotFound when id is absent.
	Get(ctx context.Context, id string) (*entities.TimedEvent, error)
	ListUnresolved(ctx context.Context) ([]entities.TimedEvent, error)
	Delete(ctx context.Context, id string) error
}
