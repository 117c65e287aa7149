package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"rafflebot/internal/domain"
)

func TestNewDrawingEventValidation(t *testing.T) {
	endAt := time.Now().Add(time.Hour)

	_, err := NewDrawingEvent("m1", "c1", "u1", "", 1, endAt)
	require.ErrorIs(t, err, domain.ErrInvalidPrize)

	_, err = NewDrawingEvent("m1", "c1", "u1", "nitro", 0, endAt)
	require.ErrorIs(t, err, domain.ErrInvalidWinners)

	event, err := NewDrawingEvent("m1", "c1", "u1", "nitro", 2, endAt)
	require.NoError(t, err)
	require.Equal(t, KindDrawing, event.Kind)
	require.NotNil(t, event.Drawing)
	require.Nil(t, event.Poll)
	require.False(t, event.Resolved)
}

func TestNewPollEventValidation(t *testing.T) {
	endAt := time.Now().Add(time.Hour)

	_, err := NewPollEvent("p1", "c1", "u1", " ", []string{"a", "b"}, endAt)
	require.ErrorIs(t, err, domain.ErrInvalidQuestion)

	_, err = NewPollEvent("p1", "c1", "u1", "q?", []string{"only one"}, endAt)
	require.ErrorIs(t, err, domain.ErrInvalidOptions)

	_, err = NewPollEvent("p1", "c1", "u1", "q?", []string{"a", "b", "c", "d", "e", "f"}, endAt)
	require.ErrorIs(t, err, domain.ErrInvalidOptions)

	_, err = NewPollEvent("p1", "c1", "u1", "q?", []string{"a", "  "}, endAt)
	require.ErrorIs(t, err, domain.ErrInvalidOptions)

	event, err := NewPollEvent("p1", "c1", "u1", "q?", []string{"a", "b"}, endAt)
	require.NoError(t, err)
	require.Equal(t, KindPoll, event.Kind)
	require.Len(t, event.Poll.Options, 2)
	require.Zero(t, event.Poll.TotalVotes())
}

func TestOverdue(t *testing.T) {
	now := time.Now()
	event := &TimedEvent{EndAt: now.Add(-time.Second)}
	require.True(t, event.Overdue(now))
	event.EndAt = now.Add(time.Second)
	require.False(t, event.Overdue(now))
}

func TestHasParticipantAndVoter(t *testing.T) {
	d := &Drawing{Participants: []string{"u1", "u2"}}
	require.True(t, d.HasParticipant("u1"))
	require.False(t, d.HasParticipant("u3"))

	p := &Poll{Options: []PollOption{
		{Label: "a", Voters: []string{"u1"}},
		{Label: "b"},
	}}
	require.True(t, p.HasVoter("u1"))
	require.False(t, p.HasVoter("u2"))
}
