package leaderboard

import (
	"sort"

	"github.com/studyquest/studyquest/internal/progression"
)

// Strategy selects how a profile's leaderboard score is computed.
type Strategy string

const (
	// StrategyTotal ranks by reconstructed lifetime experience.
	StrategyTotal Strategy = "total"
	// StrategyLevel ranks by level, experience breaking ties within a level.
	StrategyLevel Strategy = "level"
	// StrategyCourses ranks by completed-course count, average high score
	// breaking ties.
	StrategyCourses Strategy = "courses"
	// StrategyScore ranks by the sum of course high scores.
	StrategyScore Strategy = "score"
)

// levelWeight must exceed any reachable experience value so level always
// dominates: the threshold at level 1 is 100 and experience stays below the
// current threshold, which first passes 1000 at level 7.
const levelWeight = 1000

// ParseStrategy maps a query value to a Strategy. Empty and unknown values
// fall back to StrategyTotal, matching the leaderboard API contract.
func ParseStrategy(raw string) Strategy {
	switch Strategy(raw) {
	case StrategyLevel, StrategyCourses, StrategyScore:
		return Strategy(raw)
	default:
		return StrategyTotal
	}
}

// Entry is one derived leaderboard row. Field names mirror the JSON the quiz
// client consumes.
type Entry struct {
	Rank             int    `json:"rank"`
	Username         string `json:"username"`
	Level            int    `json:"level"`
	Experience       int    `json:"exp"`
	Currency         int    `json:"coins"`
	Intelligence     int    `json:"intelligence"`
	Strength         int    `json:"strength"`
	Charm            int    `json:"charm"`
	CompletedCourses int    `json:"completedCourses"`
	TotalSessions    int    `json:"totalQuizzes"`
	Score            int    `json:"score"`
	Time             int    `json:"time"`
}

// Score computes a profile's comparable score under a strategy. All values
// are integers rounded to the nearest point.
func Score(p *progression.Progression, strategy Strategy) int {
	switch strategy {
	case StrategyLevel:
		return p.Level*levelWeight + p.Experience
	case StrategyCourses:
		return p.CompletedCourseCount()*100 + p.AverageHighScore()
	case StrategyScore:
		return p.TotalHighScore()
	default:
		return p.LifetimeExperience()
	}
}

// Rank computes the full standings for a population: one entry per profile,
// descending by computed score, stable with respect to input order on ties,
// with 1-based rank positions assigned by sort order.
func Rank(profiles []progression.Progression, strategy Strategy) []Entry {
	entries := make([]Entry, 0, len(profiles))
	for i := range profiles {
		p := &profiles[i]
		entries = append(entries, Entry{
			Username:         p.Username,
			Level:            p.Level,
			Experience:       p.Experience,
			Currency:         p.Currency,
			Intelligence:     p.Intelligence,
			Strength:         p.Strength,
			Charm:            p.Charm,
			CompletedCourses: p.CompletedCourseCount(),
			TotalSessions:    p.TotalSessions,
			Score:            Score(p, strategy),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// Position returns the 1-based rank of a username within computed standings,
// or nil when the user has no entry. Absence is a sentinel, not an error.
func Position(entries []Entry, username string) *int {
	for i := range entries {
		if entries[i].Username == username {
			rank := entries[i].Rank
			return &rank
		}
	}
	return nil
}
