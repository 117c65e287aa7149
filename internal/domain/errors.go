package domain

import "errors"

// Domain errors.
var (
	ErrEventNotFound   = errors.New("event not found")
	ErrAlreadyResolved = errors.New("event already resolved")
	ErrNotResolved     = errors.New("event not resolved yet")
	ErrAlreadyJoined   = errors.New("user already joined")
	ErrAlreadyVoted    = errors.New("user already voted")
	ErrInvalidOption   = errors.New("invalid poll option")
	ErrNoParticipants  = errors.New("no eligible participants")
	ErrInvalidDuration = errors.New("duration below the minimum")
	ErrWrongEventKind  = errors.New("operation not valid for this event kind")
	ErrInvalidPrize    = errors.New("prize description must not be empty")
	ErrInvalidWinners  = errors.New("winner count must be at least 1")
	ErrInvalidQuestion = errors.New("poll question must not be empty")
	ErrInvalidOptions  = errors.New("polls need between 2 and 5 non-empty options")
)
