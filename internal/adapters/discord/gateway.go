package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"rafflebot/internal/ports/output"
)

var _ output.Gateway = (*MessagingGateway)(nil)

// MessagingGateway renders core messages as Discord embeds.
type MessagingGateway struct {
	session *discordgo.Session
}

func NewMessagingGateway(session *discordgo.Session) *MessagingGateway {
	return &MessagingGateway{session: session}
}

func (g *MessagingGateway) Announce(_ context.Context, channelID string, msg output.Message) error {
	if _, err := g.session.ChannelMessageSendEmbed(channelID, embedFromMessage(msg)); err != nil {
		return fmt.Errorf("announce to %s: %w", channelID, err)
	}
	return nil
}

// Finalize swaps the original announcement embed for the result embed and
// drops the components, leaving no live join or vote button behind.
func (g *MessagingGateway) Finalize(_ context.Context, channelID, messageID string, msg output.Message) error {
	edit := &discordgo.MessageEdit{
		Channel:    channelID,
		ID:         messageID,
		Embeds:     &[]*discordgo.MessageEmbed{embedFromMessage(msg)},
		Components: &[]discordgo.MessageComponent{},
	}
	if _, err := g.session.ChannelMessageEditComplex(edit); err != nil {
		return fmt.Errorf("finalize message %s: %w", messageID, err)
	}
	return nil
}

func (g *MessagingGateway) Notify(_ context.Context, userID string, msg output.Message) error {
	ch, err := g.session.UserChannelCreate(userID)
	if err != nil {
		return fmt.Errorf("open DM with %s: %w", userID, err)
	}
	if _, err := g.session.ChannelMessageSendEmbed(ch.ID, embedFromMessage(msg)); err != nil {
		return fmt.Errorf("notify %s: %w", userID, err)
	}
	return nil
}

func embedFromMessage(msg output.Message) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       msg.Title,
		Description: msg.Body,
		Color:       msg.Color,
	}
	if msg.Footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: msg.Footer}
	}
	return embed
}
