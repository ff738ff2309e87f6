package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/studyquest/studyquest/internal/config"
	"github.com/studyquest/studyquest/internal/db/repository"
	"github.com/studyquest/studyquest/internal/leaderboard"
	"github.com/studyquest/studyquest/internal/profile"
	"github.com/studyquest/studyquest/internal/progression"
	"github.com/studyquest/studyquest/internal/quiz"
	"github.com/studyquest/studyquest/internal/server"
	ws "github.com/studyquest/studyquest/pkg/http/ws"
)

// App wires all components and owns their lifecycle.
type App struct {
	cfg    *config.App
	logger zerolog.Logger

	pool        *pgxpool.Pool
	redisClient *redis.Client
	hub         *ws.Hub
	broadcaster *leaderboard.Broadcaster
	snapshots   *leaderboard.SnapshotWorker
	server      *server.Server
}

// New builds the full application graph.
func New(ctx context.Context, cfg *config.App, logger zerolog.Logger) (*App, error) {
	pool, err := newPgxPool(ctx, cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	seed := cfg.Quiz.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	store := profile.NewStore(redisClient, logger)
	engine := progression.NewEngine(rand.New(rand.NewSource(seed)))
	catalog := quiz.LoadCatalog(cfg.Quiz.CourseDir, logger)
	sessions := quiz.NewSessionManager(cfg.Quiz.SessionTTL, cfg.Quiz.QuestionsPerSession, rand.New(rand.NewSource(seed+1)), logger)

	boardSvc := leaderboard.NewService(store, redisClient, logger, leaderboard.ServiceOptions{
		DefaultLimit:  cfg.Leaderboard.DefaultLimit,
		MaxLimit:      cfg.Leaderboard.MaxLimit,
		PubSubChannel: cfg.Leaderboard.PubSubChannel,
	})
	snapshotRepo := repository.NewSnapshotRepository(pool)

	hub := ws.NewHub(logger)
	boardHandler := leaderboard.NewHTTPHandler(boardSvc, snapshotRepo, hub, logger)

	quizSvc := quiz.NewService(store, engine, boardSvc, catalog, sessions, logger)
	quizHandler := quiz.NewHTTPHandler(quizSvc, logger)

	return &App{
		cfg:         cfg,
		logger:      logger,
		pool:        pool,
		redisClient: redisClient,
		hub:         hub,
		broadcaster: leaderboard.NewBroadcaster(redisClient, hub, cfg.Leaderboard.PubSubChannel, logger),
		snapshots:   leaderboard.NewSnapshotWorker(boardSvc, snapshotRepo, cfg.Leaderboard.SnapshotInterval, cfg.Leaderboard.SnapshotTopN, logger),
		server:      server.New(cfg, boardHandler, quizHandler, logger),
	}, nil
}

// Run starts background workers and the HTTP server, then blocks until a
// shutdown signal or a fatal server error.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := a.broadcaster.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			a.logger.Error().Err(err).Msg("broadcaster stopped")
		}
	}()
	go func() {
		defer wg.Done()
		if err := a.snapshots.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			a.logger.Error().Err(err).Msg("snapshot worker stopped")
		}
	}()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- a.server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		a.logger.Info().Msg("shutdown signal received")
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown failed")
	}

	a.hub.CloseAll()
	wg.Wait()
	a.redisClient.Close()
	a.pool.Close()

	a.logger.Info().Msg("shutdown complete")
	return nil
}

func newPgxPool(ctx context.Context, cfg config.Postgres) (*pgxpool.Pool, error) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database, cfg.SSLMode)

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
