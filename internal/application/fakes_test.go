package application

import (
	"context"
	"sync"

	"rafflebot/internal/domain"
	"rafflebot/internal/domain/entities"
	"rafflebot/internal/ports/output"
)

// memoryStore is an in-memory EventStore. It stores deep copies so tests
// exercise the same read-modify-write cycle a real store round-trip forces.
type memoryStore struct {
	mu     sync.Mutex
	events map[string]*entities.TimedEvent
	putErr error
	getErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{events: make(map[string]*entities.TimedEvent)}
}

func copyEvent(event *entities.TimedEvent) *entities.TimedEvent {
	clone := *event
	if event.Drawing != nil {
		d := *event.Drawing
		d.Participants = append([]string{}, event.Drawing.Participants...)
		d.Winners = append([]string{}, event.Drawing.Winners...)
		clone.Drawing = &d
	}
	if event.Poll != nil {
		p := *event.Poll
		p.Options = make([]entities.PollOption, len(event.Poll.Options))
		for i, opt := range event.Poll.Options {
			opt.Voters = append([]string{}, opt.Voters...)
			p.Options[i] = opt
		}
		clone.Poll = &p
	}
	return &clone
}

func (m *memoryStore) Put(_ context.Context, event *entities.TimedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return m.putErr
	}
	m.events[event.ID] = copyEvent(event)
	return nil
}

func (m *memoryStore) Get(_ context.Context, id string) (*entities.TimedEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	event, ok := m.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	return copyEvent(event), nil
}

func (m *memoryStore) ListUnresolved(_ context.Context) ([]entities.TimedEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	var out []entities.TimedEvent
	for _, event := range m.events {
		if !event.Resolved {
			out = append(out, *copyEvent(event))
		}
	}
	return out, nil
}

func (m *memoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.events, id)
	return nil
}

type announceCall struct {
	channelID string
	msg       output.Message
}

type finalizeCall struct {
	channelID string
	messageID string
	msg       output.Message
}

type notifyCall struct {
	userID string
	msg    output.Message
}

// fakeGateway records announce/finalize/notify calls.
type fakeGateway struct {
	mu           sync.Mutex
	announces    []announceCall
	finalizes    []finalizeCall
	notifies     []notifyCall
	announceErr  error
	finalizeErr  error
	notifyErrFor map[string]error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{notifyErrFor: map[string]error{}}
}

func (g *fakeGateway) Announce(_ context.Context, channelID string, msg output.Message) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.announceErr != nil {
		return g.announceErr
	}
	g.announces = append(g.announces, announceCall{channelID: channelID, msg: msg})
	return nil
}

func (g *fakeGateway) Finalize(_ context.Context, channelID, messageID string, msg output.Message) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.finalizeErr != nil {
		return g.finalizeErr
	}
	g.finalizes = append(g.finalizes, finalizeCall{channelID: channelID, messageID: messageID, msg: msg})
	return nil
}

func (g *fakeGateway) Notify(_ context.Context, userID string, msg output.Message) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.notifyErrFor[userID]; err != nil {
		return err
	}
	g.notifies = append(g.notifies, notifyCall{userID: userID, msg: msg})
	return nil
}

func (g *fakeGateway) announceCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.announces)
}

func (g *fakeGateway) finalizeCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.finalizes)
}

func (g *fakeGateway) notifiedUsers() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	users := make([]string, len(g.notifies))
	for i, call := range g.notifies {
		users[i] = call.userID
	}
	return users
}

// keyTranslator echoes the message key, so assertions can match on keys.
type keyTranslator struct{}

func (keyTranslator) T(_ string, key string, _ map[string]any) string { return key }
