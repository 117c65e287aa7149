package entities

import (
	"strings"
	"time"

	"rafflebot/internal/domain"
)

type EventKind string

const (
	KindDrawing EventKind = "drawing"
	KindPoll    EventKind = "poll"
)

// Polls carry between 2 and 5 options (one vote button per option).
const (
	MinPollOptions = 2
	MaxPollOptions = 5
)

// TimedEvent is a community event that resolves once at EndAt.
// Exactly one of Drawing/Poll is set, matching Kind.
type TimedEvent struct {
	ID        string // message id of the originating announcement
	Kind      EventKind
	ChannelID string
	CreatorID string
	EndAt     time.Time // immutable after creation
	Resolved  bool      // monotonic false -> true
	Drawing   *Drawing
	Poll      *Poll
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Drawing is a prize giveaway. Participants is insertion-ordered and
// duplicate-free; Winners accumulates across resolution and rerolls.
type Drawing struct {
	Prize        string
	WinnerCount  int
	Participants []string
	Winners      []string
}

type PollOption struct {
	Label  string
	Votes  int
	Voters []string
}

type Poll struct {
	Question string // immutable after creation
	Options  []PollOption
}

// NewDrawingEvent validates and builds a drawing.
func NewDrawingEvent(id, channelID, creatorID, prize string, winnerCount int, endAt time.Time) (*TimedEvent, error) {
	if strings.TrimSpace(prize) == "" {
		return nil, domain.ErrInvalidPrize
	}
	if winnerCount < 1 {
		return nil, domain.ErrInvalidWinners
	}
	return &TimedEvent{
		ID:        id,
		Kind:      KindDrawing,
		ChannelID: channelID,
		CreatorID: creatorID,
		EndAt:     endAt,
		Drawing: &Drawing{
			Prize:        prize,
			WinnerCount:  winnerCount,
			Participants: []string{},
			Winners:      []string{},
		},
	}, nil
}

// NewPollEvent validates and builds a poll with zeroed tallies.
func NewPollEvent(id, channelID, creatorID, question string, labels []string, endAt time.Time) (*TimedEvent, error) {
	if strings.TrimSpace(question) == "" {
		return nil, domain.ErrInvalidQuestion
	}
	if len(labels) < MinPollOptions || len(labels) > MaxPollOptions {
		return nil, domain.ErrInvalidOptions
	}
	options := make([]PollOption, len(labels))
	for i, label := range labels {
		if strings.TrimSpace(label) == "" {
			return nil, domain.ErrInvalidOptions
		}
		options[i] = PollOption{Label: label}
	}
	return &TimedEvent{
		ID:        id,
		Kind:      KindPoll,
		ChannelID: channelID,
		CreatorID: creatorID,
		EndAt:     endAt,
		Poll: &Poll{
			Question: question,
			Options:  options,
		},
	}, nil
}

func (e *TimedEvent) Overdue(now time.Time) bool {
	return !e.EndAt.After(now)
}

// HasParticipant reports whether userID already joined the drawing.
func (d *Drawing) HasParticipant(userID string) bool {
	for _, id := range d.Participants {
		if id == userID {
			return true
		}
	}
	return false
}

// HasVoter reports whether userID already voted on any option.
func (p *Poll) HasVoter(userID string) bool {
	for i := range p.Options {
		for _, id := range p.Options[i].Voters {
			if id == userID {
				return true
			}
		}
	}
	return false
}

func (p *Poll) TotalVotes() int {
	total := 0
	for i := range p.Options {
		total += p.Options[i].Votes
	}
	return total
}
