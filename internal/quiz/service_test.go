package quiz

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyquest/studyquest/internal/leaderboard"
	"github.com/studyquest/studyquest/internal/profile"
	"github.com/studyquest/studyquest/internal/progression"
)

func newTestService(t *testing.T) (*Service, *profile.Store) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := profile.NewStore(client, zerolog.Nop())
	engine := progression.NewEngine(rand.New(rand.NewSource(1)))
	board := leaderboard.NewService(store, nil, zerolog.Nop(), leaderboard.ServiceOptions{})
	catalog := LoadCatalog("", zerolog.Nop())
	sessions := NewSessionManager(time.Minute, 10, rand.New(rand.NewSource(1)), zerolog.Nop())

	return NewService(store, engine, board, catalog, sessions, zerolog.Nop()), store
}

func TestSubmitScoreCreatesProfileAndRanks(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	result, err := svc.SubmitScore(ctx, SubmitRequest{
		Username:   "alice",
		Score:      85,
		Time:       120,
		CourseName: "math",
	})
	require.NoError(t, err)

	assert.Equal(t, 85, result.Rewards.Experience)
	assert.Equal(t, 42, result.Rewards.Currency)
	require.NotNil(t, result.Rank)
	assert.Equal(t, 1, *result.Rank)
	require.Len(t, result.Leaderboard, 1)
	assert.Equal(t, "alice", result.Leaderboard[0].Username)

	p := store.Load(ctx, "alice")
	rec, ok := p.Courses["math"]
	require.True(t, ok)
	assert.Equal(t, 85, rec.HighScore)
	assert.True(t, rec.Completed)
	assert.Equal(t, 120, rec.BestTime)
	assert.Equal(t, 1, p.TotalSessions)
}

func TestSubmitScoreClientRewardsPassThrough(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	bundle := progression.Rewards{Experience: 50, Currency: 99, Intelligence: 1}
	result, err := svc.SubmitScore(ctx, SubmitRequest{
		Username:   "bob",
		Score:      85,
		CourseName: "math",
		Rewards:    &bundle,
	})
	require.NoError(t, err)

	assert.Equal(t, bundle, result.Rewards, "client bundle is applied verbatim, not recomputed")
	p := store.Load(ctx, "bob")
	assert.Equal(t, 50, p.Experience)
	assert.Equal(t, 99, p.Currency)
	assert.Equal(t, 85, p.Courses["math"].HighScore, "score still drives the course record")
}

func TestSubmitScoreDefaultCourseName(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	_, err := svc.SubmitScore(ctx, SubmitRequest{Username: "carol", Score: 40})
	require.NoError(t, err)

	p := store.Load(ctx, "carol")
	rec, ok := p.Courses["general"]
	require.True(t, ok, "missing course name falls back to general")
	assert.False(t, rec.Completed, "40 is below the completion threshold")
}

func TestSubmitScoreRankReflectsOrdering(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.SubmitScore(ctx, SubmitRequest{Username: "strong", Score: 90, CourseName: "math"})
	require.NoError(t, err)

	result, err := svc.SubmitScore(ctx, SubmitRequest{Username: "weak", Score: 10, CourseName: "math"})
	require.NoError(t, err)

	require.NotNil(t, result.Rank)
	assert.Equal(t, 2, *result.Rank)
	require.Len(t, result.Leaderboard, 2)
	assert.Equal(t, "strong", result.Leaderboard[0].Username)
}

func TestCompleteSessionGradesAndSubmits(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	sess, ok := svc.StartSession("math", "dave")
	require.True(t, ok)
	require.Len(t, sess.Questions, 10)

	answers := make([]int, len(sess.Questions))
	for i, q := range sess.Questions {
		answers[i] = q.Correct
	}

	completed, err := svc.CompleteSession(ctx, sess.ID, answers)
	require.NoError(t, err)
	assert.Equal(t, 100, completed.Score)
	assert.Equal(t, 10, completed.Correct)
	assert.Equal(t, 10, completed.Total)

	p := store.Load(ctx, "dave")
	assert.True(t, p.Courses["math"].Completed)

	_, err = svc.CompleteSession(ctx, sess.ID, answers)
	assert.ErrorIs(t, err, ErrSessionNotFound, "sessions are single use")
}

func TestCompleteSessionPartialAnswers(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	sess, ok := svc.StartSession("science", "erin")
	require.True(t, ok)

	// Answer only the first question, correctly.
	completed, err := svc.CompleteSession(ctx, sess.ID, []int{sess.Questions[0].Correct})
	require.NoError(t, err)
	assert.Equal(t, PointsPerQuestion, completed.Score)
	assert.Equal(t, 1, completed.Correct)
}

func TestStartSessionUnknownCourse(t *testing.T) {
	svc, _ := newTestService(t)

	_, ok := svc.StartSession("underwater-basket-weaving", "frank")
	assert.False(t, ok)
}
