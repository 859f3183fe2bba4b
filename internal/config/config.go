package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds process-wide settings. Loaded once at startup and treated as
// read-only during dispatch.
type Config struct {
	DiscordToken string `env:"DISCORD_TOKEN,required"`
	StoragePath  string `env:"STORAGE_PATH" envDefault:"datastore.json"`
	Prefix       string `env:"COMMAND_PREFIX" envDefault:"!"`
	DeveloperID  string `env:"DEVELOPER_ID"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile      string `env:"LOG_FILE"`
}

func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, falling back to system environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}
