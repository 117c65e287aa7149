package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Token         string
	GuildID       string
	DatabaseURL   string
	DefaultLocale string

	// EncryptionKey encrypts event payloads at rest. Empty disables
	// encryption (payloads stored as plain JSON).
	EncryptionKey string

	// Scheduler knobs.
	MinEventDuration   time.Duration
	RescanInterval     time.Duration
	StoreTimeout       time.Duration
	ResolveMaxAttempts int

	// RerollExcludeWinners removes prior winners from the reroll pool.
	RerollExcludeWinners bool
}

// Load reads the configuration from environment variables and validates it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env is optional when variables come from the environment (Docker, CI, etc.).
	}

	cfg := &Config{
		Token:                os.Getenv("TOKEN"),
		GuildID:              os.Getenv("GUILD_ID"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		DefaultLocale:        envOr("DEFAULT_LOCALE", "fa"),
		EncryptionKey:        os.Getenv("EVENT_ENCRYPTION_KEY"),
		MinEventDuration:     10 * time.Second,
		RescanInterval:       5 * time.Minute,
		StoreTimeout:         10 * time.Second,
		ResolveMaxAttempts:   5,
		RerollExcludeWinners: true,
	}

	var err error
	if cfg.MinEventDuration, err = envDuration("MIN_EVENT_DURATION", cfg.MinEventDuration); err != nil {
		return nil, err
	}
	if cfg.RescanInterval, err = envDuration("RESCAN_INTERVAL", cfg.RescanInterval); err != nil {
		return nil, err
	}
	if cfg.StoreTimeout, err = envDuration("STORE_TIMEOUT", cfg.StoreTimeout); err != nil {
		return nil, err
	}
	if raw := os.Getenv("RESOLVE_MAX_ATTEMPTS"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("config: RESOLVE_MAX_ATTEMPTS must be a positive integer, got %q", raw)
		}
		cfg.ResolveMaxAttempts = n
	}
	if raw := os.Getenv("REROLL_EXCLUDE_WINNERS"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("config: REROLL_EXCLUDE_WINNERS must be a boolean, got %q", raw)
		}
		cfg.RerollExcludeWinners = v
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate applies all business rules to the loaded configuration.
func (c *Config) validate() error {
	if strings.TrimSpace(c.Token) == "" {
		return fmt.Errorf("config: TOKEN is required and cannot be empty")
	}

	if strings.TrimSpace(c.DatabaseURL) == "" {
		// Useful local default when DATABASE_URL is not provided.
		c.DatabaseURL = "postgres://localhost:5432/rafflebot?sslmode=disable"
	}

	parsed, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return fmt.Errorf("config: invalid DATABASE_URL (%q): %w", c.DatabaseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: invalid DATABASE_URL (%q): missing scheme or host", c.DatabaseURL)
	}

	if key := c.EncryptionKey; key != "" && len(key) < 16 {
		return fmt.Errorf("config: EVENT_ENCRYPTION_KEY must be at least 16 characters")
	}

	if c.MinEventDuration <= 0 {
		return fmt.Errorf("config: MIN_EVENT_DURATION must be positive")
	}
	if c.RescanInterval <= 0 {
		return fmt.Errorf("config: RESCAN_INTERVAL must be positive")
	}

	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be a Go duration (e.g. 30s, 5m), got %q", key, raw)
	}
	return d, nil
}
