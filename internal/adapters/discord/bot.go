package discord

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bwmarrin/discordgo"

	"rafflebot/internal/config"
)

// Bot is the Discord adapter.
type Bot struct {
	session *discordgo.Session
	config  *config.Config
	handler *Handler
}

// NewSession creates the Discord session. It is built before the bot so the
// messaging gateway can share it with the core services.
func NewSession(token string) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	return s, nil
}

// NewBot wires the interaction dispatch onto the session.
func NewBot(cfg *config.Config, session *discordgo.Session, handler *Handler) *Bot {
	bot := &Bot{
		session: session,
		config:  cfg,
		handler: handler,
	}
	session.AddHandler(bot.handleInteraction)
	return bot
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		switch i.ApplicationCommandData().Name {
		case "start-giveaway":
			b.handler.HandleStartGiveaway(s, i)
		case "start-poll":
			b.handler.HandleStartPoll(s, i)
		case "end-giveaway":
			b.handler.HandleEndGiveaway(s, i)
		case "reroll-giveaway":
			b.handler.HandleRerollGiveaway(s, i)
		}
	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		switch {
		case customID == "join_giveaway":
			b.handler.HandleJoin(s, i)
		case strings.HasPrefix(customID, "vote_"):
			b.handler.HandleVote(s, i)
		}
	}
}

// Start runs the bot until interrupted.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	defer b.session.Close()

	for _, cmd := range commandDefinitions() {
		if _, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd); err != nil {
			log.Printf("⚠️ failed to register command %s: %v", cmd.Name, err)
		}
	}

	fmt.Println("🤖 Bot online! Press CTRL+C to quit.")
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	return nil
}

func commandDefinitions() []*discordgo.ApplicationCommand {
	winnersMin := float64(1)
	return []*discordgo.ApplicationCommand{
		{
			Name:        "start-giveaway",
			Description: "Start a timed prize giveaway",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionChannel, Name: "channel", Description: "Channel to announce in", Required: true},
				{Type: discordgo.ApplicationCommandOptionString, Name: "duration", Description: "Duration, e.g. 30m, 1h, 2d", Required: true},
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "winners", Description: "Number of winners", Required: true, MinValue: &winnersMin},
				{Type: discordgo.ApplicationCommandOptionString, Name: "prize", Description: "Prize description", Required: true},
			},
		},
		{
			Name:        "start-poll",
			Description: "Start a timed poll",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionChannel, Name: "channel", Description: "Channel to announce in", Required: true},
				{Type: discordgo.ApplicationCommandOptionString, Name: "duration", Description: "Duration, e.g. 30m, 1h, 2d", Required: true},
				{Type: discordgo.ApplicationCommandOptionString, Name: "question", Description: "Poll question", Required: true},
				{Type: discordgo.ApplicationCommandOptionString, Name: "option1", Description: "First option", Required: true},
				{Type: discordgo.ApplicationCommandOptionString, Name: "option2", Description: "Second option", Required: true},
				{Type: discordgo.ApplicationCommandOptionString, Name: "option3", Description: "Third option", Required: false},
				{Type: discordgo.ApplicationCommandOptionString, Name: "option4", Description: "Fourth option", Required: false},
				{Type: discordgo.ApplicationCommandOptionString, Name: "option5", Description: "Fifth option", Required: false},
			},
		},
		{
			Name:        "end-giveaway",
			Description: "End a giveaway or poll right now",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "messageid", Description: "Message id of the announcement", Required: true},
			},
		},
		{
			Name:        "reroll-giveaway",
			Description: "Draw new winners for an ended giveaway",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "messageid", Description: "Message id of the announcement", Required: true},
			},
		},
	}
}
