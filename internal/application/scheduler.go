package application

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/puzpuzpuz/xsync"

	"rafflebot/internal/domain"
	"rafflebot/internal/domain/entities"
	"rafflebot/internal/ports/output"
)

// Resolver is the slice of the event service the scheduler drives.
type Resolver interface {
	Resolve(ctx context.Context, id string) (*entities.TimedEvent, error)
}

// Scheduler arms one-shot timers for unresolved events and heals lost ones
// with a periodic recovery scan. The store is the single source of truth;
// the in-memory timer table is a cache that restarts rebuild from scratch.
type Scheduler struct {
	store    output.EventStore
	resolver Resolver

	rescanInterval time.Duration
	storeTimeout   time.Duration
	maxAttempts    int

	timers *xsync.MapOf[string, *time.Timer]
}

func NewScheduler(store output.EventStore, resolver Resolver, rescanInterval, storeTimeout time.Duration, maxAttempts int) *Scheduler {
	return &Scheduler{
		store:          store,
		resolver:       resolver,
		rescanInterval: rescanInterval,
		storeTimeout:   storeTimeout,
		maxAttempts:    maxAttempts,
		timers:         xsync.NewMapOf[*time.Timer](),
	}
}

// Run performs the startup recovery scan, then rescans every interval until
// ctx is cancelled. Rescans only pick up events whose timer got lost (crash
// between scans, clock skew); arming an already-armed event is a no-op.
func (s *Scheduler) Run(ctx context.Context) {
	s.scan(ctx)
	ticker := time.NewTicker(s.rescanInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.scan(ctx)
		}
	}
}

func (s *Scheduler) scan(ctx context.Context) {
	sctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	events, err := s.store.ListUnresolved(sctx)
	cancel()
	if err != nil {
		log.Printf("⚠️ recovery scan failed: %v", err)
		return
	}
	if len(events) > 0 {
		log.Printf("⏱️ recovery scan: %d unresolved event(s)", len(events))
	}
	for i := range events {
		s.Arm(&events[i])
	}
}

// Arm schedules the resolution timer for event. Overdue events fire
// immediately. Safe to call redundantly for the same id.
func (s *Scheduler) Arm(event *entities.TimedEvent) {
	if event.Resolved {
		return
	}
	id := event.ID
	var delay time.Duration
	if !event.Overdue(time.Now()) {
		delay = time.Until(event.EndAt)
	}
	t := time.AfterFunc(delay, func() { s.fire(id) })
	if _, armed := s.timers.LoadOrStore(id, t); armed {
		t.Stop()
	}
}

// fire resolves one event with bounded retries. Exhaustion leaves the event
// unresolved in the store so the next recovery scan picks it up again.
func (s *Scheduler) fire(id string) {
	defer s.timers.Delete(id)

	backoff := time.Second
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), s.storeTimeout)
		_, err := s.resolver.Resolve(ctx, id)
		cancel()
		if err == nil {
			return
		}
		if errors.Is(err, domain.ErrEventNotFound) {
			// Deleted out from under us; nothing left to resolve.
			return
		}
		log.Printf("⚠️ resolve %s failed (attempt %d/%d): %v", id, attempt, s.maxAttempts, err)
		if attempt < s.maxAttempts {
			time.Sleep(backoff)
			backoff *= 2
		}
	}
	log.Printf("❌ event %s stuck after %d attempts, leaving it for the next recovery scan", id, s.maxAttempts)
}
