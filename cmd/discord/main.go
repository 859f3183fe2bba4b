package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	_ "github.com/lexisother/TurnipBeams/internal/commands"

	"github.com/lexisother/TurnipBeams/internal/config"
	"github.com/lexisother/TurnipBeams/internal/discord"
	"github.com/lexisother/TurnipBeams/internal/logging"
	"github.com/lexisother/TurnipBeams/internal/permission"
	"github.com/lexisother/TurnipBeams/internal/storage"
	v "github.com/lexisother/TurnipBeams/internal/version"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(cfg.LogLevel, cfg.LogFile)
	log.Info().Str("version", v.Version).Msgf("Starting %s bot...", v.AppName)

	permission.Validate()

	store, err := storage.New(cfg.StoragePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open storage")
	}
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		if err := discord.StartBot(ctx, cfg, store); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Info().Str("signal", s.String()).Msg("Received signal, shutting down...")
		cancel()
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("Discord bot error")
		}
	}
}
