package discord

import (
	"context"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"rafflebot/internal/domain"
	"rafflebot/internal/domain/entities"
)

func (h *Handler) HandleStartGiveaway(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !hasManageMessages(i) {
		respondEphemeral(s, i.Interaction, h.translator.T(h.locale, "err.no_permission", nil))
		return
	}
	opts := commandOptions(i)
	channelID := opts["channel"].ChannelValue(nil).ID
	prize := opts["prize"].StringValue()
	winnerCount := int(opts["winners"].IntValue())

	duration, err := parseDuration(opts["duration"].StringValue())
	if err != nil || duration < h.minDuration {
		respondEphemeral(s, i.Interaction, h.errorMessage(domain.ErrInvalidDuration))
		return
	}

	// Validate before anything is posted; the real record is keyed by the
	// announcement's message id, which does not exist yet.
	draft, err := entities.NewDrawingEvent("draft", channelID, i.Member.User.ID, prize, winnerCount, time.Now().Add(duration))
	if err != nil {
		respondEphemeral(s, i.Interaction, h.errorMessage(err))
		return
	}

	msg, err := s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{h.drawingEmbed(draft)},
		Components: h.drawingComponents(),
	})
	if err != nil {
		log.Printf("❌ failed to post giveaway announcement: %v", err)
		respondEphemeral(s, i.Interaction, h.translator.T(h.locale, "err.generic", nil))
		return
	}

	event, err := h.events.CreateDrawing(context.Background(), msg.ID, channelID, i.Member.User.ID, prize, winnerCount, duration)
	if err != nil {
		_ = s.ChannelMessageDelete(channelID, msg.ID)
		respondEphemeral(s, i.Interaction, h.errorMessage(err))
		return
	}
	h.scheduler.Arm(event)
	respondEphemeral(s, i.Interaction, h.translator.T(h.locale, "reply.drawing.created", nil))
}

func (h *Handler) HandleStartPoll(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !hasManageMessages(i) {
		respondEphemeral(s, i.Interaction, h.translator.T(h.locale, "err.no_permission", nil))
		return
	}
	opts := commandOptions(i)
	channelID := opts["channel"].ChannelValue(nil).ID
	question := opts["question"].StringValue()

	labels := []string{}
	for _, name := range []string{"option1", "option2", "option3", "option4", "option5"} {
		if opt, ok := opts[name]; ok {
			labels = append(labels, opt.StringValue())
		}
	}

	duration, err := parseDuration(opts["duration"].StringValue())
	if err != nil || duration < h.minDuration {
		respondEphemeral(s, i.Interaction, h.errorMessage(domain.ErrInvalidDuration))
		return
	}

	draft, err := entities.NewPollEvent("draft", channelID, i.Member.User.ID, question, labels, time.Now().Add(duration))
	if err != nil {
		respondEphemeral(s, i.Interaction, h.errorMessage(err))
		return
	}

	msg, err := s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{h.pollEmbed(draft)},
		Components: h.pollComponents(draft),
	})
	if err != nil {
		log.Printf("❌ failed to post poll announcement: %v", err)
		respondEphemeral(s, i.Interaction, h.translator.T(h.locale, "err.generic", nil))
		return
	}

	event, err := h.events.CreatePoll(context.Background(), msg.ID, channelID, i.Member.User.ID, question, labels, duration)
	if err != nil {
		_ = s.ChannelMessageDelete(channelID, msg.ID)
		respondEphemeral(s, i.Interaction, h.errorMessage(err))
		return
	}
	h.scheduler.Arm(event)
	respondEphemeral(s, i.Interaction, h.translator.T(h.locale, "reply.poll.created", nil))
}

func (h *Handler) HandleEndGiveaway(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !hasManageMessages(i) {
		respondEphemeral(s, i.Interaction, h.translator.T(h.locale, "err.no_permission", nil))
		return
	}
	messageID := commandOptions(i)["messageid"].StringValue()
	if _, err := h.events.ForceEnd(context.Background(), messageID); err != nil {
		respondEphemeral(s, i.Interaction, h.errorMessage(err))
		return
	}
	respondEphemeral(s, i.Interaction, h.translator.T(h.locale, "reply.ended", nil))
}

func (h *Handler) HandleRerollGiveaway(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !hasManageMessages(i) {
		respondEphemeral(s, i.Interaction, h.translator.T(h.locale, "err.no_permission", nil))
		return
	}
	messageID := commandOptions(i)["messageid"].StringValue()
	if _, err := h.events.Reroll(context.Background(), messageID); err != nil {
		respondEphemeral(s, i.Interaction, h.errorMessage(err))
		return
	}
	respondEphemeral(s, i.Interaction, h.translator.T(h.locale, "reply.rerolled", nil))
}
