package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"rafflebot/internal/domain/entities"
)

func seedDrawing(t *testing.T, store *memoryStore, id string, endAt time.Time) {
	t.Helper()
	event, err := entities.NewDrawingEvent(id, "c1", "host", "nitro", 1, endAt)
	require.NoError(t, err)
	event.Drawing.Participants = []string{"u1", "u2"}
	require.NoError(t, store.Put(context.Background(), event))
}

func TestRecoveryScanResolvesOverdueEvent(t *testing.T) {
	store := newMemoryStore()
	gateway := newFakeGateway()
	svc := newTestService(store, gateway)

	// Event ended while the process was down; no timer was ever armed
	// in this incarnation.
	seedDrawing(t, store, "m1", time.Now().Add(-time.Minute))

	sched := NewScheduler(store, svc, time.Minute, time.Second, 3)
	sched.scan(context.Background())

	require.Eventually(t, func() bool {
		event, err := store.Get(context.Background(), "m1")
		return err == nil && event.Resolved
	}, 2*time.Second, 10*time.Millisecond)
	require.Equal(t, 1, gateway.finalizeCount())
}

func TestArmedTimerFiresAtEnd(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store, newFakeGateway())

	seedDrawing(t, store, "m1", time.Now().Add(50*time.Millisecond))

	sched := NewScheduler(store, svc, time.Minute, time.Second, 3)
	sched.scan(context.Background())

	require.Eventually(t, func() bool {
		event, err := store.Get(context.Background(), "m1")
		return err == nil && event.Resolved
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRearmingIsANoOp(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store, newFakeGateway())

	seedDrawing(t, store, "m1", time.Now().Add(time.Hour))
	event, err := store.Get(context.Background(), "m1")
	require.NoError(t, err)

	sched := NewScheduler(store, svc, time.Minute, time.Second, 3)
	sched.Arm(event)
	sched.Arm(event)
	sched.scan(context.Background())

	require.Equal(t, 1, sched.timers.Size())
}

func TestArmIgnoresResolvedEvents(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store, newFakeGateway())

	seedDrawing(t, store, "m1", time.Now().Add(time.Hour))
	event, err := store.Get(context.Background(), "m1")
	require.NoError(t, err)
	event.Resolved = true

	sched := NewScheduler(store, svc, time.Minute, time.Second, 3)
	sched.Arm(event)

	require.Equal(t, 0, sched.timers.Size())
}

func TestFireGivesUpAfterBoundedAttempts(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store, newFakeGateway())

	seedDrawing(t, store, "m1", time.Now().Add(-time.Minute))
	store.mu.Lock()
	store.getErr = errors.New("store unavailable")
	store.mu.Unlock()

	sched := NewScheduler(store, svc, time.Minute, 100*time.Millisecond, 1)
	sched.fire("m1")

	// The event must survive for the next recovery scan.
	store.mu.Lock()
	store.getErr = nil
	store.mu.Unlock()
	event, err := store.Get(context.Background(), "m1")
	require.NoError(t, err)
	require.False(t, event.Resolved)
	require.Equal(t, 0, sched.timers.Size())
}

func TestRunStopsOnContextCancel(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store, newFakeGateway())
	sched := NewScheduler(store, svc, 10*time.Millisecond, time.Second, 3)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sched.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after cancellation")
	}
}
