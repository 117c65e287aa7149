package main

import (
	"context"
	"log"
	"os"

	"rafflebot/internal/adapters/discord"
	"rafflebot/internal/application"
	"rafflebot/internal/config"
	"rafflebot/internal/infrastructure/database"
	"rafflebot/internal/infrastructure/i18n"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	if err := database.RunMigrations(cfg.DatabaseURL, "migrations"); err != nil {
		log.Fatalf("❌ Migration failure: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Database initialization failure: %v", err)
	}
	defer pool.Close()

	cipher, err := database.NewCipher(cfg.EncryptionKey)
	if err != nil {
		log.Fatalf("❌ Cipher initialization failure: %v", err)
	}
	store := database.NewEventStore(pool, cipher)

	session, err := discord.NewSession(cfg.Token)
	if err != nil {
		log.Fatalf("❌ Discord session failure: %v", err)
	}

	translator := i18n.NewTranslator(cfg.DefaultLocale)
	gateway := discord.NewMessagingGateway(session)

	events := application.NewEventService(store, gateway, translator, application.Settings{
		DefaultLocale:        cfg.DefaultLocale,
		MinEventDuration:     cfg.MinEventDuration,
		StoreTimeout:         cfg.StoreTimeout,
		RerollExcludeWinners: cfg.RerollExcludeWinners,
	})
	scheduler := application.NewScheduler(store, events, cfg.RescanInterval, cfg.StoreTimeout, cfg.ResolveMaxAttempts)
	go scheduler.Run(ctx)

	handler := discord.NewHandler(events, scheduler, translator, cfg.DefaultLocale, cfg.MinEventDuration)
	bot := discord.NewBot(cfg, session, handler)
	if err := bot.Start(); err != nil {
		log.Printf("❌ Bot startup failure: %v", err)
		os.Exit(1)
	}
}
