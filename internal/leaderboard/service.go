package leaderboard

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/studyquest/studyquest/internal/progression"
	ws "github.com/studyquest/studyquest/pkg/http/ws"
)

// ProfileLister provides the stored population to rank over.
type ProfileLister interface {
	ListAll(ctx context.Context) ([]progression.Progression, error)
}

// ServiceOptions configures leaderboard service behavior.
type ServiceOptions struct {
	DefaultLimit  int
	MaxLimit      int
	PubSubChannel string
}

// Service computes standings from the profile store and emits updates over
// Redis Pub/Sub after submissions.
type Service struct {
	profiles      ProfileLister
	redis         *redis.Client
	logger        zerolog.Logger
	defaultLimit  int
	maxLimit      int
	pubsubChannel string
}

// NewService constructs a leaderboard service instance.
func NewService(profiles ProfileLister, redisClient *redis.Client, logger zerolog.Logger, opts ServiceOptions) *Service {
	defaultLimit := opts.DefaultLimit
	if defaultLimit <= 0 {
		defaultLimit = 20
	}
	maxLimit := opts.MaxLimit
	if maxLimit <= 0 {
		maxLimit = 100
	}
	channel := opts.PubSubChannel
	if channel == "" {
		channel = "lb:updates"
	}

	return &Service{
		profiles:      profiles,
		redis:         redisClient,
		logger:        logger.With().Str("component", "leaderboard").Logger(),
		defaultLimit:  defaultLimit,
		maxLimit:      maxLimit,
		pubsubChannel: channel,
	}
}

// DefaultLimit reports the limit applied when the caller does not pass one.
func (s *Service) DefaultLimit() int { return s.defaultLimit }

// MaxLimit reports the largest limit a caller may request.
func (s *Service) MaxLimit() int { return s.maxLimit }

// Standings ranks the full stored population under a strategy. Ranking always
// covers every profile so truncation never changes relative order.
func (s *Service) Standings(ctx context.Context, strategy Strategy) ([]Entry, error) {
	profiles, err := s.profiles.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return Rank(profiles, strategy), nil
}

// Top returns the leading entries plus the total population size.
func (s *Service) Top(ctx context.Context, strategy Strategy, limit int) ([]Entry, int, error) {
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	entries, err := s.Standings(ctx, strategy)
	if err != nil {
		return nil, 0, err
	}
	total := len(entries)
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, total, nil
}

// UserRank reports a user's 1-based position and the population size. A nil
// rank means the user has no stored profile yet.
func (s *Service) UserRank(ctx context.Context, username string, strategy Strategy) (*int, int, error) {
	entries, err := s.Standings(ctx, strategy)
	if err != nil {
		return nil, 0, err
	}
	return Position(entries, username), len(entries), nil
}

// PublishUpdate pushes the current top entries onto the Pub/Sub channel for
// WebSocket consumers. Failures are logged, never surfaced to the submitter.
func (s *Service) PublishUpdate(ctx context.Context, strategy Strategy, submitter string) {
	if s.redis == nil {
		return
	}

	entries, _, err := s.Top(ctx, strategy, 10)
	if err != nil {
		s.logger.Warn().Err(err).Str("strategy", string(strategy)).Msg("failed to collect leaderboard update")
		return
	}
	if len(entries) == 0 {
		return
	}

	payload := ws.LeaderboardUpdatePayload{
		SortBy:    string(strategy),
		Top:       toWSEntries(entries),
		Submitter: submitter,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to marshal leaderboard update")
		return
	}
	if err := s.redis.Publish(ctx, s.pubsubChannel, data).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to publish leaderboard update")
	}
}
