package input

import (
	"context"
	"time"

	"rafflebot/internal/domain/entities"
)

type EventUseCase interface {
	CreateDrawing(ctx context.Context, id, channelID, creatorID, prize string, winnerCount int, duration time.Duration) (*entities.TimedEvent, error)
	CreatePoll(ctx context.Context, id, channelID, creatorID, question string, options []string, duration time.Duration) (*entities.TimedEvent, error)
	Join(ctx context.Context, id, userID string) (*entities.TimedEvent, error)
	Vote(ctx context.Context, id string, optionIndex int, userID string) (*entities.TimedEvent, error)
	Resolve(ctx context.Context, id string) (*entities.TimedEvent, error)
	ForceEnd(ctx context.Context, id string) (*entities.TimedEvent, error)
	Reroll(ctx context.Context, id string) ([]string, error)
}

// TimerArmer schedules the one-shot resolution timer for a freshly created
// event. The in-memory timer is a cache; the store stays authoritative.
type TimerArmer interface {
	Arm(event *entities.TimedEvent)
}
