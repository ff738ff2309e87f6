package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/studyquest/studyquest/internal/app"
	"github.com/studyquest/studyquest/internal/config"
	"github.com/studyquest/studyquest/internal/logging"
)

func main() {
	// Local development convenience; absence is fine in containers.
	_ = godotenv.Load()

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		fallback := logging.New("studyquest", "unknown")
		fallback.Fatal().Err(err).Msg("failed to load config")
	}

	logger := logging.New(cfg.Name, cfg.Env)

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize application")
	}

	if err := a.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("application exited with error")
		os.Exit(1)
	}
}
