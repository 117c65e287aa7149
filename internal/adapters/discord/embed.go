package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"rafflebot/internal/domain/entities"
)

const (
	colorGold = 0xFFD700
)

var optionEmojis = []string{"1️⃣", "2️⃣", "3️⃣", "4️⃣", "5️⃣"}

func endTag(event *entities.TimedEvent) string {
	return fmt.Sprintf("<t:%d:R>", event.EndAt.Unix())
}

// drawingEmbed renders the public giveaway announcement, including the live
// participant counter.
func (h *Handler) drawingEmbed(event *entities.TimedEvent) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: h.translator.T(h.locale, "embed.drawing.title", nil),
		Description: h.translator.T(h.locale, "embed.drawing.body", map[string]any{
			"Prize":       event.Drawing.Prize,
			"WinnerCount": event.Drawing.WinnerCount,
			"EndTag":      endTag(event),
			"Host":        fmt.Sprintf("<@%s>", event.CreatorID),
			"Count":       len(event.Drawing.Participants),
		}),
		Color:  colorGold,
		Footer: &discordgo.MessageEmbedFooter{Text: h.translator.T(h.locale, "embed.drawing.footer", nil)},
	}
}

func (h *Handler) drawingComponents() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    h.translator.T(h.locale, "embed.drawing.join", nil),
				Style:    discordgo.SuccessButton,
				CustomID: "join_giveaway",
				Emoji:    &discordgo.ComponentEmoji{Name: "🎉"},
			},
		}},
	}
}

func (h *Handler) pollEmbed(event *entities.TimedEvent) *discordgo.MessageEmbed {
	var lines strings.Builder
	for idx, opt := range event.Poll.Options {
		lines.WriteString(fmt.Sprintf("%s %s\n", optionEmojis[idx], opt.Label))
	}
	return &discordgo.MessageEmbed{
		Title: h.translator.T(h.locale, "embed.poll.title", map[string]any{
			"Question": event.Poll.Question,
		}),
		Description: h.translator.T(h.locale, "embed.poll.body", map[string]any{
			"Options": lines.String(),
			"EndTag":  endTag(event),
		}),
		Color:  colorGold,
		Footer: &discordgo.MessageEmbedFooter{Text: h.translator.T(h.locale, "embed.poll.footer", nil)},
	}
}

func (h *Handler) pollComponents(event *entities.TimedEvent) []discordgo.MessageComponent {
	buttons := make([]discordgo.MessageComponent, len(event.Poll.Options))
	for idx := range event.Poll.Options {
		buttons[idx] = discordgo.Button{
			Label:    optionEmojis[idx],
			Style:    discordgo.SecondaryButton,
			CustomID: fmt.Sprintf("vote_%d", idx),
		}
	}
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: buttons},
	}
}
