package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ScoreSubmissions counts accepted score submissions per course.
	ScoreSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "studyquest",
		Name:      "score_submissions_total",
		Help:      "Accepted score submissions.",
	}, []string{"course"})

	// LevelUps counts level-ups resolved during submissions.
	LevelUps = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "studyquest",
		Name:      "level_ups_total",
		Help:      "Level-ups granted by the leveling engine.",
	})

	// LeaderboardRequests counts leaderboard reads per sort strategy.
	LeaderboardRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "studyquest",
		Name:      "leaderboard_requests_total",
		Help:      "Leaderboard fetches by sort strategy.",
	}, []string{"strategy"})
)
