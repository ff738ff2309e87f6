package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of pgxpool.Pool the repository needs.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SnapshotRepository archives leaderboard standings in Postgres. The archive
// backs the read fallback used when the profile store is unreachable.
type SnapshotRepository struct {
	db DBTX
}

// NewSnapshotRepository wraps a pgx pool (or transaction) for snapshot access.
func NewSnapshotRepository(db DBTX) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Insert stores one snapshot of computed standings for a strategy.
func (r *SnapshotRepository) Insert(ctx context.Context, strategy string, generatedAt time.Time, entries []byte, sourceHash string) error {
	const q = `
		INSERT INTO leaderboard_snapshots (strategy, generated_at, entries, source_hash)
		VALUES ($1, $2, $3, $4)`
	if _, err := r.db.Exec(ctx, q, strategy, generatedAt, entries, sourceHash); err != nil {
		return fmt.Errorf("insert leaderboard snapshot: %w", err)
	}
	return nil
}

// LatestEntries returns the newest archived standings for a strategy, or nil
// when no snapshot has been taken yet.
func (r *SnapshotRepository) LatestEntries(ctx context.Context, strategy string) ([]byte, error) {
	const q = `
		SELECT entries
		FROM leaderboard_snapshots
		WHERE strategy = $1
		ORDER BY generated_at DESC
		LIMIT 1`

	var entries []byte
	if err := r.db.QueryRow(ctx, q, strategy).Scan(&entries); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch latest leaderboard snapshot: %w", err)
	}
	return entries, nil
}
