package application

import (
	"context"
	"fmt"
	"log"
	"strings"

	"rafflebot/internal/domain/entities"
	"rafflebot/internal/ports/output"
)

const (
	colorGold = 0xFFD700
	colorGrey = 0x808080
)

var optionEmojis = []string{"1️⃣", "2️⃣", "3️⃣", "4️⃣", "5️⃣"}

func mentionList(userIDs []string) string {
	mentions := make([]string, len(userIDs))
	for i, id := range userIDs {
		mentions[i] = fmt.Sprintf("<@%s>", id)
	}
	return strings.Join(mentions, ", ")
}

// announceOutcome rewrites the announcement message with the result and,
// for drawings, sends one DM per winner. The event id is the id of the
// announcement message, so finalizing it retires the join or vote buttons.
// Every call is isolated best-effort: a failed edit or a single unreachable
// winner is logged and never bubbles up.
func (s *EventService) announceOutcome(event *entities.TimedEvent, winners []string) {
	ctx := context.Background()

	var msg output.Message
	switch event.Kind {
	case entities.KindDrawing:
		msg = s.drawingResultMessage(event, winners)
	case entities.KindPoll:
		msg = s.pollResultMessage(event)
	}
	if err := s.gateway.Finalize(ctx, event.ChannelID, event.ID, msg); err != nil {
		log.Printf("⚠️ finalize failed for event %s: %v", event.ID, err)
	}

	if event.Kind != entities.KindDrawing {
		return
	}
	dm := s.winnerDMMessage(event)
	for _, winnerID := range winners {
		if err := s.gateway.Notify(ctx, winnerID, dm); err != nil {
			log.Printf("⚠️ winner DM failed (event %s, user %s): %v", event.ID, winnerID, err)
		}
	}
}

// announceReroll posts a fresh message; the original announcement already
// shows the first resolution and stays as is.
func (s *EventService) announceReroll(event *entities.TimedEvent, winners []string) {
	ctx := context.Background()
	locale := s.settings.DefaultLocale

	msg := output.Message{
		Title: s.translator.T(locale, "announce.reroll.title", nil),
		Body: s.translator.T(locale, "announce.reroll.winners", map[string]any{
			"Winners": mentionList(winners),
		}),
		Color: colorGold,
	}
	if err := s.gateway.Announce(ctx, event.ChannelID, msg); err != nil {
		log.Printf("⚠️ reroll announce failed for event %s: %v", event.ID, err)
	}

	dm := s.winnerDMMessage(event)
	for _, winnerID := range winners {
		if err := s.gateway.Notify(ctx, winnerID, dm); err != nil {
			log.Printf("⚠️ winner DM failed (event %s, user %s): %v", event.ID, winnerID, err)
		}
	}
}

func (s *EventService) drawingResultMessage(event *entities.TimedEvent, winners []string) output.Message {
	locale := s.settings.DefaultLocale
	var body strings.Builder
	body.WriteString(s.translator.T(locale, "announce.drawing.prize", map[string]any{
		"Prize": event.Drawing.Prize,
	}))
	body.WriteString("\n\n")
	if len(winners) > 0 {
		body.WriteString(s.translator.T(locale, "announce.drawing.winners", map[string]any{
			"Winners": mentionList(winners),
		}))
	} else {
		body.WriteString(s.translator.T(locale, "announce.drawing.no_winners", nil))
	}
	return output.Message{
		Title:  s.translator.T(locale, "announce.drawing.title", nil),
		Body:   body.String(),
		Footer: s.translator.T(locale, "announce.drawing.footer", nil),
		Color:  colorGrey,
	}
}

func (s *EventService) winnerDMMessage(event *entities.TimedEvent) output.Message {
	locale := s.settings.DefaultLocale
	return output.Message{
		Title: s.translator.T(locale, "dm.winner.title", nil),
		Body: s.translator.T(locale, "dm.winner.body", map[string]any{
			"Prize": event.Drawing.Prize,
		}),
		Footer: s.translator.T(locale, "dm.winner.footer", nil),
		Color:  colorGold,
	}
}

func (s *EventService) pollResultMessage(event *entities.TimedEvent) output.Message {
	locale := s.settings.DefaultLocale
	entries, total := event.Poll.Tally()

	lines := make([]string, len(entries))
	for i, entry := range entries {
		emoji := ""
		if i < len(optionEmojis) {
			emoji = optionEmojis[i]
		}
		lines[i] = s.translator.T(locale, "announce.poll.line", map[string]any{
			"Emoji":   emoji,
			"Label":   entry.Label,
			"Votes":   entry.Votes,
			"Percent": fmt.Sprintf("%.1f", entry.Percent),
		})
	}
	return output.Message{
		Title: s.translator.T(locale, "announce.poll.title", map[string]any{
			"Question": event.Poll.Question,
		}),
		Body: strings.Join(lines, "\n\n"),
		Footer: s.translator.T(locale, "announce.poll.footer", map[string]any{
			"Total": total,
		}),
		Color: colorGrey,
	}
}
