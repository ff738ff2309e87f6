package main

import (
	"context"
	"flag"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"github.com/studyquest/studyquest/internal/config"
	"github.com/studyquest/studyquest/internal/logging"
)

func main() {
	var (
		dir     = flag.String("dir", "db/migrations", "directory with migration files")
		command = flag.String("command", "up", "goose command (up, down, status, version)")
	)
	flag.Parse()

	_ = godotenv.Load()

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		fallback := logging.New("studyquest-migrator", "unknown")
		fallback.Fatal().Err(err).Msg("failed to load config")
	}
	logger := logging.New(cfg.Name+"-migrator", cfg.Env)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Host,
		cfg.Postgres.Port, cfg.Postgres.Database, cfg.Postgres.SSLMode)

	db, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	if err := goose.RunContext(ctx, *command, db, *dir); err != nil {
		logger.Fatal().Err(err).Str("command", *command).Msg("migration failed")
	}

	logger.Info().Str("command", *command).Msg("migration complete")
}
