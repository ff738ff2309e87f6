package ws

import "encoding/json"

// MessageType constants for the WebSocket protocol.
const (
	// Client -> Server
	TypeSubscribe = "subscribe"

	// Server -> Client
	TypeLeaderboardUpdate = "leaderboard_update"
	TypeError             = "error"
	TypePing              = "ping"
	TypePong              = "pong"
)

// Message wraps all WebSocket payloads with type and optional request ID.
type Message struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	RequestID string          `json:"request_id,omitempty"`
}

// SubscribePayload lets a client pick the sort strategy it wants pushed.
type SubscribePayload struct {
	SortBy string `json:"sortBy"`
}

// LeaderboardUpdatePayload carries fresh standings after a score submission.
type LeaderboardUpdatePayload struct {
	SortBy    string             `json:"sortBy"`
	Top       []LeaderboardEntry `json:"top"`
	Submitter string             `json:"submitter,omitempty"`
}

// LeaderboardEntry mirrors the REST leaderboard entry shape.
type LeaderboardEntry struct {
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

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
