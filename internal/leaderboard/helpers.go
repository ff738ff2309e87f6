package leaderboard

import ws "github.com/studyquest/studyquest/pkg/http/ws"

func toWSEntries(entries []Entry) []ws.LeaderboardEntry {
	result := make([]ws.LeaderboardEntry, len(entries))
	for i, e := range entries {
		result[i] = ws.LeaderboardEntry{
			Rank:             e.Rank,
			Username:         e.Username,
			Level:            e.Level,
			Experience:       e.Experience,
			Currency:         e.Currency,
			Intelligence:     e.Intelligence,
			Strength:         e.Strength,
			Charm:            e.Charm,
			CompletedCourses: e.CompletedCourses,
			TotalSessions:    e.TotalSessions,
			Score:            e.Score,
			Time:             e.Time,
		}
	}
	return result
}
