package quiz

import (
	"time"

	"github.com/google/uuid"

	"github.com/studyquest/studyquest/internal/leaderboard"
	"github.com/studyquest/studyquest/internal/progression"
)

// Question is one multiple-choice question. Correct is the option index.
type Question struct {
	Prompt      string   `json:"question"`
	Options     []string `json:"options"`
	Correct     int      `json:"correct"`
	Explanation string   `json:"explanation,omitempty"`
}

// Course is a named subject area with its own question pool.
type Course struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Icon        string     `json:"icon,omitempty"`
	Color       string     `json:"color,omitempty"`
	Questions   []Question `json:"questions"`
}

// CourseSummary is the catalog listing entry, question bodies omitted.
type CourseSummary struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Icon          string `json:"icon,omitempty"`
	Color         string `json:"color,omitempty"`
	QuestionCount int    `json:"questionCount"`
}

// PointsPerQuestion is the score granted for each correct answer.
const PointsPerQuestion = 10

// Session is one in-flight quiz attempt: a random subset of a course's pool.
type Session struct {
	ID        uuid.UUID  `json:"id"`
	CourseID  string     `json:"courseId"`
	Username  string     `json:"username"`
	Questions []Question `json:"-"`
	StartedAt time.Time  `json:"startedAt"`
	ExpiresAt time.Time  `json:"expiresAt"`
}

// SessionQuestion is the client view of a question, answer withheld.
type SessionQuestion struct {
	Order   int      `json:"order"`
	Prompt  string   `json:"question"`
	Options []string `json:"options"`
}

// ClientQuestions strips answers for delivery to the quiz client.
func (s *Session) ClientQuestions() []SessionQuestion {
	out := make([]SessionQuestion, len(s.Questions))
	for i, q := range s.Questions {
		out[i] = SessionQuestion{Order: i + 1, Prompt: q.Prompt, Options: q.Options}
	}
	return out
}

// SubmitRequest captures one finished session reported by the client.
// Rewards is optional: when present the client-computed bundle is applied
// as-is, otherwise the server derives one from the score.
type SubmitRequest struct {
	Username   string
	Score      int
	Time       int
	CourseName string
	Rewards    *progression.Rewards
}

// ProfileSummary is the profile block returned after a submission.
type ProfileSummary struct {
	Username         string `json:"username"`
	Level            int    `json:"level"`
	Experience       int    `json:"exp"`
	ExperienceToNext int    `json:"expToNextLevel"`
	Currency         int    `json:"coins"`
	Intelligence     int    `json:"intelligence"`
	Strength         int    `json:"strength"`
	Charm            int    `json:"charm"`
}

// SubmitResult is everything a submission produced. Rank is nil when the
// submitter could not be ranked (standings unavailable).
type SubmitResult struct {
	Rank        *int                      `json:"rank"`
	Profile     ProfileSummary            `json:"profile"`
	Rewards     progression.Rewards       `json:"rewards"`
	Level       progression.LevelUpReport `json:"levelResult"`
	Leaderboard []leaderboard.Entry       `json:"leaderboard"`
	Message     string                    `json:"message"`
}

func summarize(p *progression.Progression) ProfileSummary {
	return ProfileSummary{
		Username:         p.Username,
		Level:            p.Level,
		Experience:       p.Experience,
		ExperienceToNext: p.ExperienceToNext,
		Currency:         p.Currency,
		Intelligence:     p.Intelligence,
		Strength:         p.Strength,
		Charm:            p.Charm,
	}
}
