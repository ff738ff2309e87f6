package leaderboard

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/studyquest/studyquest/internal/metrics"
	httperrors "github.com/studyquest/studyquest/pkg/http/errors"
	ws "github.com/studyquest/studyquest/pkg/http/ws"
)

// SnapshotSource serves archived standings when the live store is unreachable.
type SnapshotSource interface {
	LatestEntries(ctx context.Context, strategy string) ([]byte, error)
}

var upgrader = websocket.Upgrader{
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// HTTPHandler exposes REST and WebSocket endpoints for leaderboard queries.
type HTTPHandler struct {
	svc       *Service
	snapshots SnapshotSource
	hub       *ws.Hub
	logger    zerolog.Logger
}

// NewHTTPHandler constructs a leaderboard HTTP handler.
func NewHTTPHandler(svc *Service, snapshots SnapshotSource, hub *ws.Hub, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:       svc,
		snapshots: snapshots,
		hub:       hub,
		logger:    logger.With().Str("component", "leaderboard_http").Logger(),
	}
}

// leaderboardResponse is the wire shape the quiz client expects.
type leaderboardResponse struct {
	Success     bool    `json:"success"`
	Leaderboard []Entry `json:"leaderboard"`
	Total       int     `json:"total"`
	SortBy      string  `json:"sortBy"`
}

// HandleGet responds with the current leaderboard.
// Route: GET /api/leaderboard?limit=20&sortBy=total
func (h *HTTPHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	strategy := ParseStrategy(r.URL.Query().Get("sortBy"))
	metrics.LeaderboardRequests.WithLabelValues(string(strategy)).Inc()

	limit := h.svc.DefaultLimit()
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	ctx := r.Context()
	entries, total, err := h.svc.Top(ctx, strategy, limit)
	if err != nil {
		h.logger.Warn().Err(err).Str("strategy", string(strategy)).Msg("live leaderboard fetch failed")
		entries, total = h.snapshotFallback(ctx, strategy, limit)
		if entries == nil {
			httperrors.RespondInternalError(w, "failed to fetch leaderboard")
			return
		}
	}
	if entries == nil {
		entries = []Entry{}
	}

	writeJSON(w, leaderboardResponse{
		Success:     true,
		Leaderboard: entries,
		Total:       total,
		SortBy:      string(strategy),
	})
}

func (h *HTTPHandler) snapshotFallback(ctx context.Context, strategy Strategy, limit int) ([]Entry, int) {
	if h.snapshots == nil {
		return nil, 0
	}
	data, err := h.snapshots.LatestEntries(ctx, string(strategy))
	if err != nil || data == nil {
		if err != nil {
			h.logger.Warn().Err(err).Str("strategy", string(strategy)).Msg("snapshot fetch failed")
		}
		return nil, 0
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		h.logger.Warn().Err(err).Msg("snapshot payload decode failed")
		return nil, 0
	}
	total := len(entries)
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, total
}

// HandleWebSocket upgrades the connection and streams leaderboard updates.
// Route: GET /ws/leaderboard
func (h *HTTPHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	wsConn := ws.NewConnection(conn, h.logger)
	id := h.hub.RegisterConnection(wsConn)

	go wsConn.WritePump()
	wsConn.ReadPump(func(msg ws.Message) error {
		if msg.Type == ws.TypePing {
			return wsConn.Send(ws.Message{Type: ws.TypePong})
		}
		return nil
	})

	h.hub.UnregisterConnection(id)
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
