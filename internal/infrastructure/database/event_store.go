package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"rafflebot/internal/domain"
	"rafflebot/internal/domain/entities"
	"rafflebot/internal/ports/output"
)

var _ output.EventStore = (*EventStore)(nil)

// EventStore persists timed events in the timed_events table. EndAt is
// stored as epoch millis; the variant payload goes through the cipher.
type EventStore struct {
	pool   *pgxpool.Pool
	cipher Cipher
}

func NewEventStore(pool *pgxpool.Pool, cipher Cipher) *EventStore {
	return &EventStore{pool: pool, cipher: cipher}
}

const putEventSQL = `
INSERT INTO timed_events (id, kind, channel_id, created_by, end_at, resolved, payload)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO UPDATE
SET resolved = EXCLUDED.resolved,
    payload = EXCLUDED.payload,
    updated_at = now()
RETURNING created_at, updated_at`

func (s *EventStore) Put(ctx context.Context, event *entities.TimedEvent) error {
	plain, err := encodePayload(event)
	if err != nil {
		return fmt.Errorf("put event: %w", err)
	}
	sealed, err := s.cipher.Seal(plain)
	if err != nil {
		return fmt.Errorf("put event: %w", err)
	}
	var createdAt, updatedAt pgtype.Timestamptz
	err = s.pool.QueryRow(ctx, putEventSQL,
		event.ID,
		string(event.Kind),
		event.ChannelID,
		event.CreatorID,
		event.EndAt.UnixMilli(),
		event.Resolved,
		sealed,
	).Scan(&createdAt, &updatedAt)
	if err != nil {
		return fmt.Errorf("put event: %w", err)
	}
	event.CreatedAt = pgtypeTimestamptzToTime(createdAt)
	event.UpdatedAt = pgtypeTimestamptzToTime(updatedAt)
	return nil
}

const getEventSQL = `
SELECT id, kind, channel_id, created_by, end_at, resolved, payload, created_at, updated_at
FROM timed_events
WHERE id = $1`

func (s *EventStore) Get(ctx context.Context, id string) (*entities.TimedEvent, error) {
	event, err := s.scanEvent(s.pool.QueryRow(ctx, getEventSQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

const listUnresolvedSQL = `
SELECT id, kind, channel_id, created_by, end_at, resolved, payload, created_at, updated_at
FROM timed_events
WHERE NOT resolved
ORDER BY end_at`

func (s *EventStore) ListUnresolved(ctx context.Context) ([]entities.TimedEvent, error) {
	rows, err := s.pool.Query(ctx, listUnresolvedSQL)
	if err != nil {
		return nil, fmt.Errorf("list unresolved: %w", err)
	}
	defer rows.Close()

	var events []entities.TimedEvent
	for rows.Next() {
		event, err := s.scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("list unresolved: %w", err)
		}
		events = append(events, *event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list unresolved: %w", err)
	}
	return events, nil
}

func (s *EventStore) Delete(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM timed_events WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (s *EventStore) scanEvent(row pgx.Row) (*entities.TimedEvent, error) {
	var (
		event                entities.TimedEvent
		kind                 string
		endAtMillis          int64
		sealed               []byte
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := row.Scan(
		&event.ID,
		&kind,
		&event.ChannelID,
		&event.CreatorID,
		&endAtMillis,
		&event.Resolved,
		&sealed,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	event.Kind = entities.EventKind(kind)
	event.EndAt = time.UnixMilli(endAtMillis)
	event.CreatedAt = pgtypeTimestamptzToTime(createdAt)
	event.UpdatedAt = pgtypeTimestamptzToTime(updatedAt)

	plain, err := s.cipher.Open(sealed)
	if err != nil {
		return nil, err
	}
	if err := decodePayload(&event, plain); err != nil {
		return nil, err
	}
	return &event, nil
}
