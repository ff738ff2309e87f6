package quiz

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SessionManager tracks in-flight quiz sessions in memory. Sessions expire
// after the configured TTL and are swept lazily on access.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	ttl      time.Duration
	perQuiz  int
	rng      *rand.Rand
	logger   zerolog.Logger
}

// NewSessionManager builds a manager. perQuiz is the number of questions
// drawn per session; pools smaller than that are used whole.
func NewSessionManager(ttl time.Duration, perQuiz int, rng *rand.Rand, logger zerolog.Logger) *SessionManager {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	if perQuiz <= 0 {
		perQuiz = 10
	}
	return &SessionManager{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      ttl,
		perQuiz:  perQuiz,
		rng:      rng,
		logger:   logger.With().Str("component", "quiz_sessions").Logger(),
	}
}

// Start opens a session with a random draw from the course's question pool.
func (m *SessionManager) Start(course *Course, username string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked()

	questions := m.drawLocked(course.Questions)
	now := time.Now()
	sess := &Session{
		ID:        uuid.New(),
		CourseID:  course.ID,
		Username:  username,
		Questions: questions,
		StartedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	m.sessions[sess.ID] = sess

	m.logger.Debug().
		Str("session_id", sess.ID.String()).
		Str("course", course.ID).
		Str("username", username).
		Int("questions", len(questions)).
		Msg("session started")
	return sess
}

// Get returns a live session. Expired sessions are dropped and reported as
// missing.
func (m *SessionManager) Get(id uuid.UUID) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	if time.Now().After(sess.ExpiresAt) {
		delete(m.sessions, id)
		return nil, false
	}
	return sess, true
}

// Remove closes a session. Safe to call on unknown IDs.
func (m *SessionManager) Remove(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Count reports the number of tracked sessions, expired ones included.
func (m *SessionManager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *SessionManager) sweepLocked() {
	now := time.Now()
	for id, sess := range m.sessions {
		if now.After(sess.ExpiresAt) {
			delete(m.sessions, id)
		}
	}
}

func (m *SessionManager) drawLocked(pool []Question) []Question {
	picked := make([]Question, len(pool))
	copy(picked, pool)
	m.rng.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	if len(picked) > m.perQuiz {
		picked = picked[:m.perQuiz]
	}
	return picked
}

// Grade scores submitted answers against the session's questions. Answers
// beyond the question count are ignored; missing answers count as wrong.
func Grade(sess *Session, answers []int) (score, correct int) {
	for i, q := range sess.Questions {
		if i >= len(answers) {
			break
		}
		if answers[i] == q.Correct {
			correct++
		}
	}
	return correct * PointsPerQuestion, correct
}
