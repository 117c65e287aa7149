package discord

import (
	"context"
	"log"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
)

func (h *Handler) HandleJoin(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	event, err := h.events.Join(ctx, i.Message.ID, i.Member.User.ID)
	if err != nil {
		respondEphemeral(s, i.Interaction, h.errorMessage(err))
		return
	}

	// Refresh the participant counter on the announcement.
	embeds := []*discordgo.MessageEmbed{h.drawingEmbed(event)}
	if _, err := s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		ID:      event.ID,
		Channel: event.ChannelID,
		Embeds:  &embeds,
	}); err != nil {
		log.Printf("⚠️ failed to update giveaway counter for %s: %v", event.ID, err)
	}

	respondEphemeral(s, i.Interaction, h.translator.T(h.locale, "reply.joined", nil))
}

func (h *Handler) HandleVote(s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID
	idx, err := strconv.Atoi(strings.TrimPrefix(customID, "vote_"))
	if err != nil {
		respondEphemeral(s, i.Interaction, h.translator.T(h.locale, "err.invalid_option", nil))
		return
	}
	if _, err := h.events.Vote(context.Background(), i.Message.ID, idx, i.Member.User.ID); err != nil {
		respondEphemeral(s, i.Interaction, h.errorMessage(err))
		return
	}
	respondEphemeral(s, i.Interaction, h.translator.T(h.locale, "reply.voted", nil))
}
