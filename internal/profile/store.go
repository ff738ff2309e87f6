package profile

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/studyquest/studyquest/internal/progression"
)

const keyPrefix = "profile:"

// Store persists one progression record per username in Redis. Records are
// stored as JSON under "profile:<username>". There is no locking around
// read-modify-write cycles; concurrent submissions for the same username race
// and the last write wins.
type Store struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewStore constructs a profile store.
func NewStore(client *redis.Client, logger zerolog.Logger) *Store {
	return &Store{
		client: client,
		logger: logger.With().Str("component", "profile_store").Logger(),
	}
}

// Key returns the storage key for a username.
func Key(username string) string {
	return keyPrefix + username
}

// Load returns the stored record for a username, or a freshly initialized
// default record. Read errors and malformed payloads are logged and treated
// as "no record found" so a submission is never rejected by a broken read.
func (s *Store) Load(ctx context.Context, username string) *progression.Progression {
	data, err := s.client.Get(ctx, Key(username)).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn().Err(err).Str("username", username).Msg("profile read failed, starting fresh")
		}
		return progression.New(username)
	}

	var p progression.Progression
	if err := json.Unmarshal(data, &p); err != nil {
		s.logger.Warn().Err(err).Str("username", username).Msg("stored profile malformed, starting fresh")
		return progression.New(username)
	}
	if p.Courses == nil {
		p.Courses = make(map[string]*progression.CourseRecord)
	}
	return &p
}

// Save persists the record. Best-effort: the caller decides whether a failed
// save is fatal to its flow.
func (s *Store) Save(ctx context.Context, p *progression.Progression) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile %s: %w", p.Username, err)
	}
	if err := s.client.Set(ctx, Key(p.Username), data, 0).Err(); err != nil {
		return fmt.Errorf("save profile %s: %w", p.Username, err)
	}
	return nil
}

// Delete removes a stored record. Missing records are not an error.
func (s *Store) Delete(ctx context.Context, username string) error {
	if err := s.client.Del(ctx, Key(username)).Err(); err != nil {
		return fmt.Errorf("delete profile %s: %w", username, err)
	}
	return nil
}

// ListAll returns every stored record, skipping entries that fail to decode.
func (s *Store) ListAll(ctx context.Context) ([]progression.Progression, error) {
	var profiles []progression.Progression

	iter := s.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		data, err := s.client.Get(ctx, key).Bytes()
		if err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("profile read failed during listing")
			continue
		}
		var p progression.Progression
		if err := json.Unmarshal(data, &p); err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("skipping malformed profile")
			continue
		}
		if p.Username == "" {
			continue
		}
		profiles = append(profiles, p)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan profiles: %w", err)
	}
	return profiles, nil
}
