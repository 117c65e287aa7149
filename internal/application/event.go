package application

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"rafflebot/internal/domain"
	"rafflebot/internal/domain/entities"
	"rafflebot/internal/ports/output"
)

// Settings holds the tunables the event service takes from configuration.
type Settings struct {
	DefaultLocale        string
	MinEventDuration     time.Duration
	StoreTimeout         time.Duration
	RerollExcludeWinners bool
}

// EventService owns every state transition of a timed event. All mutations
// of one event id are serialized through a per-id mutex held for the whole
// read-modify-write cycle; unrelated events proceed in parallel.
type EventService struct {
	store      output.EventStore
	gateway    output.Gateway
	translator output.T
	settings   Settings

	locksMu sync.Mutex
	locks   map[string]*eventLock

	randMu sync.Mutex
	rng    *rand.Rand
}

// eventLock is a refcounted per-id mutex. The count covers waiters as well
// as the holder, so an entry is only evicted once no operation on that id
// is in flight and later operations never alias a second mutex.
type eventLock struct {
	mu   sync.Mutex
	refs int
}

func NewEventService(
	store output.EventStore,
	gateway output.Gateway,
	translator output.T,
	settings Settings,
) *EventService {
	return &EventService{
		store:      store,
		gateway:    gateway,
		translator: translator,
		settings:   settings,
		locks:      make(map[string]*eventLock),
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// lockEvent locks the mutex owning id and returns the matching unlock. The
// unlock drops the table entry when the last in-flight operation on the id
// releases it, so the table shrinks back once an event goes quiet.
func (s *EventService) lockEvent(id string) (unlock func()) {
	s.locksMu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &eventLock{}
		s.locks[id] = l
	}
	l.refs++
	s.locksMu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.locksMu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, id)
		}
		s.locksMu.Unlock()
	}
}

func (s *EventService) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.settings.StoreTimeout)
}

func (s *EventService) get(ctx context.Context, id string) (*entities.TimedEvent, error) {
	sctx, cancel := s.storeCtx(ctx)
	defer cancel()
	return s.store.Get(sctx, id)
}

func (s *EventService) put(ctx context.Context, event *entities.TimedEvent) error {
	sctx, cancel := s.storeCtx(ctx)
	defer cancel()
	return s.store.Put(sctx, event)
}

// draw serializes access to the shared random source; per-id locks do not
// cover draws happening on different events at the same time.
func (s *EventService) draw(pool []string, count int) []string {
	s.randMu.Lock()
	defer s.randMu.Unlock()
	return entities.DrawWinners(pool, count, s.rng)
}

// CreateDrawing persists a new drawing. The caller supplies the id of the
// announcement message so the event can be found from interactions on it.
func (s *EventService) CreateDrawing(ctx context.Context, id, channelID, creatorID, prize string, winnerCount int, duration time.Duration) (*entities.TimedEvent, error) {
	if duration < s.settings.MinEventDuration {
		return nil, domain.ErrInvalidDuration
	}
	event, err := entities.NewDrawingEvent(id, channelID, creatorID, prize, winnerCount, time.Now().Add(duration))
	if err != nil {
		return nil, err
	}
	if err := s.put(ctx, event); err != nil {
		return nil, fmt.Errorf("create drawing: %w", err)
	}
	return event, nil
}

func (s *EventService) CreatePoll(ctx context.Context, id, channelID, creatorID, question string, options []string, duration time.Duration) (*entities.TimedEvent, error) {
	if duration < s.settings.MinEventDuration {
		return nil, domain.ErrInvalidDuration
	}
	event, err := entities.NewPollEvent(id, channelID, creatorID, question, options, time.Now().Add(duration))
	if err != nil {
		return nil, err
	}
	if err := s.put(ctx, event); err != nil {
		return nil, fmt.Errorf("create poll: %w", err)
	}
	return event, nil
}

// Join appends userID to a drawing's participant set. Idempotent from the
// user's point of view: the second call fails with ErrAlreadyJoined and
// leaves the set untouched.
func (s *EventService) Join(ctx context.Context, id, userID string) (*entities.TimedEvent, error) {
	unlock := s.lockEvent(id)
	defer unlock()

	event, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.Kind != entities.KindDrawing {
		return nil, domain.ErrWrongEventKind
	}
	if event.Resolved {
		return nil, domain.ErrAlreadyResolved
	}
	if event.Drawing.HasParticipant(userID) {
		return nil, domain.ErrAlreadyJoined
	}
	event.Drawing.Participants = append(event.Drawing.Participants, userID)
	if err := s.put(ctx, event); err != nil {
		return nil, fmt.Errorf("join: %w", err)
	}
	return event, nil
}

// Vote adds one vote to the option at optionIndex. One vote per user per
// poll; counts are kept incrementally so resolution never recounts.
func (s *EventService) Vote(ctx context.Context, id string, optionIndex int, userID string) (*entities.TimedEvent, error) {
	unlock := s.lockEvent(id)
	defer unlock()

	event, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.Kind != entities.KindPoll {
		return nil, domain.ErrWrongEventKind
	}
	if event.Resolved {
		return nil, domain.ErrAlreadyResolved
	}
	if optionIndex < 0 || optionIndex >= len(event.Poll.Options) {
		return nil, domain.ErrInvalidOption
	}
	if event.Poll.HasVoter(userID) {
		return nil, domain.ErrAlreadyVoted
	}
	opt := &event.Poll.Options[optionIndex]
	opt.Votes++
	opt.Voters = append(opt.Voters, userID)
	if err := s.put(ctx, event); err != nil {
		return nil, fmt.Errorf("vote: %w", err)
	}
	return event, nil
}

// Resolve transitions the event to resolved exactly once. Redundant calls
// (timer fire racing the recovery scan, an admin forcing the end) return
// the stored record without side effects. The gateway is only reached once
// the new state is durable, and its failures never roll the state back.
func (s *EventService) Resolve(ctx context.Context, id string) (*entities.TimedEvent, error) {
	unlock := s.lockEvent(id)

	event, err := s.get(ctx, id)
	if err != nil {
		unlock()
		return nil, err
	}
	if event.Resolved {
		unlock()
		return event, nil
	}

	var winners []string
	if event.Kind == entities.KindDrawing {
		winners = s.draw(event.Drawing.Participants, event.Drawing.WinnerCount)
		event.Drawing.Winners = append(event.Drawing.Winners, winners...)
	}
	event.Resolved = true
	if err := s.put(ctx, event); err != nil {
		// Leave the stored record untouched for the next recovery scan.
		event.Resolved = false
		if event.Kind == entities.KindDrawing {
			event.Drawing.Winners = event.Drawing.Winners[:len(event.Drawing.Winners)-len(winners)]
		}
		unlock()
		return nil, fmt.Errorf("resolve: %w", err)
	}
	unlock()

	s.announceOutcome(event, winners)
	return event, nil
}

// ForceEnd is an early, manual resolution; there is no separate cancel path.
func (s *EventService) ForceEnd(ctx context.Context, id string) (*entities.TimedEvent, error) {
	return s.Resolve(ctx, id)
}

// Reroll draws a fresh winner set from a resolved drawing. With exclusion
// enabled (the default) prior winners never win again; the new winners are
// recorded on the event so chained rerolls keep excluding.
func (s *EventService) Reroll(ctx context.Context, id string) ([]string, error) {
	unlock := s.lockEvent(id)

	event, err := s.get(ctx, id)
	if err != nil {
		unlock()
		return nil, err
	}
	if event.Kind != entities.KindDrawing {
		unlock()
		return nil, domain.ErrWrongEventKind
	}
	if !event.Resolved {
		unlock()
		return nil, domain.ErrNotResolved
	}
	pool := event.Drawing.ResidualPool(s.settings.RerollExcludeWinners)
	if len(pool) == 0 {
		unlock()
		return nil, domain.ErrNoParticipants
	}
	winners := s.draw(pool, event.Drawing.WinnerCount)
	event.Drawing.Winners = append(event.Drawing.Winners, winners...)
	if err := s.put(ctx, event); err != nil {
		unlock()
		return nil, fmt.Errorf("reroll: %w", err)
	}
	unlock()

	s.announceReroll(event, winners)
	return winners, nil
}
