package leaderboard

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
)

// SnapshotInserter archives standings rows.
type SnapshotInserter interface {
	Insert(ctx context.Context, strategy string, generatedAt time.Time, entries []byte, sourceHash string) error
}

var snapshotStrategies = []Strategy{StrategyTotal, StrategyLevel, StrategyCourses, StrategyScore}

// SnapshotWorker periodically persists computed standings into Postgres so the
// leaderboard endpoint can keep answering when the profile store is down.
type SnapshotWorker struct {
	svc      *Service
	repo     SnapshotInserter
	logger   zerolog.Logger
	interval time.Duration
	topN     int
}

func NewSnapshotWorker(svc *Service, repo SnapshotInserter, interval time.Duration, topN int, logger zerolog.Logger) *SnapshotWorker {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if topN <= 0 {
		topN = 50
	}
	return &SnapshotWorker{
		svc:      svc,
		repo:     repo,
		logger:   logger.With().Str("component", "leaderboard_snapshot_worker").Logger(),
		interval: interval,
		topN:     topN,
	}
}

// Run blocks until context cancellation.
func (w *SnapshotWorker) Run(ctx context.Context) error {
	if w.svc == nil || w.repo == nil {
		return nil
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// run immediately
	w.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *SnapshotWorker) tick(ctx context.Context) {
	for _, strategy := range snapshotStrategies {
		if err := w.snapshotStrategy(ctx, strategy); err != nil {
			w.logger.Warn().Err(err).Str("strategy", string(strategy)).Msg("snapshot failed")
		}
	}
}

func (w *SnapshotWorker) snapshotStrategy(ctx context.Context, strategy Strategy) error {
	entries, _, err := w.svc.Top(ctx, strategy, w.topN)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}

	sourceHash := sha256.Sum256(data)
	now := time.Now().UTC()

	if err := w.repo.Insert(ctx, string(strategy), now, data, hex.EncodeToString(sourceHash[:])); err != nil {
		return err
	}

	w.logger.Info().
		Str("strategy", string(strategy)).
		Int("entries", len(entries)).
		Time("generated_at", now).
		Msg("leaderboard snapshot persisted")

	return nil
}
