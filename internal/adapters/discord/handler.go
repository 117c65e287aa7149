package discord

import (
	"errors"
	"time"

	"rafflebot/internal/domain"
	"rafflebot/internal/ports/input"
	"rafflebot/internal/ports/output"
)

// Handler handles Discord interactions using use cases.
type Handler struct {
	events      input.EventUseCase
	scheduler   input.TimerArmer
	translator  output.T
	locale      string
	minDuration time.Duration
}

// NewHandler creates a Handler.
func NewHandler(
	events input.EventUseCase,
	scheduler input.TimerArmer,
	translator output.T,
	locale string,
	minDuration time.Duration,
) *Handler {
	return &Handler{
		events:      events,
		scheduler:   scheduler,
		translator:  translator,
		locale:      locale,
		minDuration: minDuration,
	}
}

// errorKey maps a domain error to the i18n key of its user-facing message.
func errorKey(err error) string {
	switch {
	case errors.Is(err, domain.ErrEventNotFound):
		return "err.not_found"
	case errors.Is(err, domain.ErrAlreadyResolved):
		return "err.already_resolved"
	case errors.Is(err, domain.ErrNotResolved):
		return "err.not_resolved"
	case errors.Is(err, domain.ErrAlreadyJoined):
		return "err.already_joined"
	case errors.Is(err, domain.ErrAlreadyVoted):
		return "err.already_voted"
	case errors.Is(err, domain.ErrInvalidOption):
		return "err.invalid_option"
	case errors.Is(err, domain.ErrNoParticipants):
		return "err.no_participants"
	case errors.Is(err, domain.ErrInvalidDuration):
		return "err.invalid_duration"
	case errors.Is(err, domain.ErrWrongEventKind):
		return "err.wrong_kind"
	case errors.Is(err, domain.ErrInvalidPrize),
		errors.Is(err, domain.ErrInvalidWinners),
		errors.Is(err, domain.ErrInvalidQuestion),
		errors.Is(err, domain.ErrInvalidOptions):
		return "err.invalid_input"
	default:
		return "err.generic"
	}
}

func (h *Handler) errorMessage(err error) string {
	key := errorKey(err)
	var data map[string]any
	if key == "err.invalid_duration" {
		data = map[string]any{"Min": h.minDuration.String()}
	}
	return h.translator.T(h.locale, key, data)
}
