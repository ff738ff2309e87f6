package quiz

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/studyquest/studyquest/internal/leaderboard"
	"github.com/studyquest/studyquest/internal/metrics"
	"github.com/studyquest/studyquest/internal/profile"
	"github.com/studyquest/studyquest/internal/progression"
)

// ErrSessionNotFound reports an unknown or expired session ID.
var ErrSessionNotFound = errors.New("session not found or expired")

// Service orchestrates submissions: load profile, apply rewards and leveling,
// record the course result, persist, then report rank and standings. The
// engine's random source is not safe for concurrent use, so all engine calls
// happen under mu.
type Service struct {
	mu       sync.Mutex
	store    *profile.Store
	engine   *progression.Engine
	board    *leaderboard.Service
	catalog  *Catalog
	sessions *SessionManager
	logger   zerolog.Logger
}

// NewService wires the submission pipeline.
func NewService(store *profile.Store, engine *progression.Engine, board *leaderboard.Service, catalog *Catalog, sessions *SessionManager, logger zerolog.Logger) *Service {
	return &Service{
		store:    store,
		engine:   engine,
		board:    board,
		catalog:  catalog,
		sessions: sessions,
		logger:   logger.With().Str("component", "quiz_service").Logger(),
	}
}

// Catalog exposes the loaded course set.
func (s *Service) Catalog() *Catalog { return s.catalog }

// StartSession opens a quiz session for a course.
func (s *Service) StartSession(courseID, username string) (*Session, bool) {
	course, ok := s.catalog.Get(courseID)
	if !ok {
		return nil, false
	}
	return s.sessions.Start(course, username), true
}

// CompletedSession is the outcome of grading plus the resulting submission.
type CompletedSession struct {
	Score   int           `json:"score"`
	Correct int           `json:"correctCount"`
	Total   int           `json:"totalQuestions"`
	Result  *SubmitResult `json:"-"`
}

// CompleteSession grades a session server-side and runs the submission flow
// with server-derived rewards. The session is consumed either way.
func (s *Service) CompleteSession(ctx context.Context, sessionID uuid.UUID, answers []int) (*CompletedSession, error) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.sessions.Remove(sessionID)

	score, correct := Grade(sess, answers)
	elapsed := int(time.Since(sess.StartedAt).Seconds())

	result, err := s.SubmitScore(ctx, SubmitRequest{
		Username:   sess.Username,
		Score:      score,
		Time:       elapsed,
		CourseName: sess.CourseID,
	})
	if err != nil {
		return nil, err
	}
	return &CompletedSession{
		Score:   score,
		Correct: correct,
		Total:   len(sess.Questions),
		Result:  result,
	}, nil
}

// SubmitScore runs the full pipeline for one finished session. Only a failed
// profile save is fatal; rank and standings lookups degrade to an empty
// leaderboard and a nil rank so the submission itself still succeeds.
func (s *Service) SubmitScore(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	p := s.store.Load(ctx, req.Username)

	s.mu.Lock()
	var rewards progression.Rewards
	if req.Rewards != nil {
		rewards = *req.Rewards
	} else {
		rewards, p.ActiveEffects = s.engine.CourseRewards(req.Score, p.ActiveEffects)
	}
	report := s.engine.ApplyRewards(p, rewards)
	s.mu.Unlock()

	course := req.CourseName
	if course == "" {
		course = "general"
	}
	p.RecordCourseResult(course, req.Score, req.Time)
	p.TotalSessions++
	p.LastUpdated = time.Now().UnixMilli()

	if err := s.store.Save(ctx, p); err != nil {
		return nil, err
	}

	metrics.ScoreSubmissions.WithLabelValues(course).Inc()
	if report.LeveledUp {
		metrics.LevelUps.Add(float64(report.LevelsGained))
	}

	s.logger.Info().
		Str("username", req.Username).
		Str("course", course).
		Int("score", req.Score).
		Int("level", p.Level).
		Bool("leveled_up", report.LeveledUp).
		Msg("score submitted")

	result := &SubmitResult{
		Profile: summarize(p),
		Rewards: rewards,
		Level:   report,
		Message: "score saved",
	}

	rank, _, err := s.board.UserRank(ctx, req.Username, leaderboard.StrategyTotal)
	if err != nil {
		s.logger.Warn().Err(err).Msg("rank lookup failed after submission")
	} else {
		result.Rank = rank
	}

	top, _, err := s.board.Top(ctx, leaderboard.StrategyTotal, s.board.DefaultLimit())
	if err != nil {
		s.logger.Warn().Err(err).Msg("standings fetch failed after submission")
		top = []leaderboard.Entry{}
	}
	result.Leaderboard = top

	go s.board.PublishUpdate(context.WithoutCancel(ctx), leaderboard.StrategyTotal, req.Username)

	return result, nil
}
