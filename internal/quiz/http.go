package quiz

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/studyquest/studyquest/internal/leaderboard"
	"github.com/studyquest/studyquest/internal/progression"
	httperrors "github.com/studyquest/studyquest/pkg/http/errors"
)

// HTTPHandler exposes submission, profile, course and session endpoints.
type HTTPHandler struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandler constructs the quiz HTTP handler.
func NewHTTPHandler(svc *Service, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		logger: logger.With().Str("component", "quiz_http").Logger(),
	}
}

type submitPayload struct {
	Username   string               `json:"username"`
	Score      *float64             `json:"score"`
	Time       float64              `json:"time"`
	CourseName string               `json:"courseName"`
	Rewards    *progression.Rewards `json:"rewards"`
}

type submitResponse struct {
	Success     bool                      `json:"success"`
	Rank        *int                      `json:"rank"`
	Profile     ProfileSummary            `json:"profile"`
	Rewards     progression.Rewards       `json:"rewards"`
	Level       progression.LevelUpReport `json:"levelResult"`
	Leaderboard []leaderboard.Entry       `json:"leaderboard"`
	Message     string                    `json:"message"`
}

// HandleSubmitScore accepts a finished session's score and optional
// client-computed rewards bundle.
func (h *HTTPHandler) HandleSubmitScore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	var payload submitPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "invalid request body")
		return
	}
	if payload.Username == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "username is required", "username")
		return
	}
	if payload.Score == nil {
		httperrors.RespondValidationError(w, httperrors.ErrCodeInvalidScore, "score must be a number", "score")
		return
	}

	result, err := h.svc.SubmitScore(r.Context(), SubmitRequest{
		Username:   payload.Username,
		Score:      int(*payload.Score),
		Time:       int(payload.Time),
		CourseName: payload.CourseName,
		Rewards:    payload.Rewards,
	})
	if err != nil {
		h.logger.Error().Err(err).Str("username", payload.Username).Msg("submission failed")
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeSubmitFailed, "failed to save score")
		return
	}

	writeJSON(w, http.StatusOK, submitResponse{
		Success:     true,
		Rank:        result.Rank,
		Profile:     result.Profile,
		Rewards:     result.Rewards,
		Level:       result.Level,
		Leaderboard: result.Leaderboard,
		Message:     result.Message,
	})
}

// HandleProfile serves GET (fetch, defaults for unknown users) and DELETE.
func (h *HTTPHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "username is required", "username")
		return
	}

	switch r.Method {
	case http.MethodGet:
		p := h.svc.store.Load(r.Context(), username)
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"profile": p,
		})
	case http.MethodDelete:
		if err := h.svc.store.Delete(r.Context(), username); err != nil {
			h.logger.Error().Err(err).Str("username", username).Msg("profile delete failed")
			httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeProfileDeleteFailed, "failed to delete profile")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "profile deleted",
		})
	default:
		httperrors.RespondMethodNotAllowed(w)
	}
}

// HandleCourses lists the course catalog.
func (h *HTTPHandler) HandleCourses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"courses": h.svc.Catalog().List(),
	})
}

type startSessionPayload struct {
	CourseID string `json:"courseId"`
	Username string `json:"username"`
}

// HandleStartSession opens a quiz session and returns its questions with the
// answers withheld.
func (h *HTTPHandler) HandleStartSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	var payload startSessionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "invalid request body")
		return
	}
	if payload.Username == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "username is required", "username")
		return
	}
	if payload.CourseID == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "courseId is required", "courseId")
		return
	}

	sess, ok := h.svc.StartSession(payload.CourseID, payload.Username)
	if !ok {
		httperrors.RespondNotFound(w, httperrors.ErrCodeCourseNotFound, "unknown course: "+payload.CourseID)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"session": map[string]any{
			"id":        sess.ID,
			"courseId":  sess.CourseID,
			"questions": sess.ClientQuestions(),
			"expiresAt": sess.ExpiresAt,
		},
	})
}

type completeSessionPayload struct {
	SessionID string `json:"sessionId"`
	Answers   []int  `json:"answers"`
}

// HandleCompleteSession grades a session server-side and runs the submission
// pipeline on the result.
func (h *HTTPHandler) HandleCompleteSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	var payload completeSessionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "invalid request body")
		return
	}
	sessionID, err := uuid.Parse(payload.SessionID)
	if err != nil {
		httperrors.RespondValidationError(w, httperrors.ErrCodeInvalidRequest, "sessionId must be a UUID", "sessionId")
		return
	}

	completed, err := h.svc.CompleteSession(r.Context(), sessionID, payload.Answers)
	if err != nil {
		if err == ErrSessionNotFound {
			httperrors.RespondNotFound(w, httperrors.ErrCodeSessionNotFound, "session not found or expired")
			return
		}
		h.logger.Error().Err(err).Str("session_id", payload.SessionID).Msg("session completion failed")
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeSubmitFailed, "failed to complete session")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"score":          completed.Score,
		"correctCount":   completed.Correct,
		"totalQuestions": completed.Total,
		"rank":           completed.Result.Rank,
		"profile":        completed.Result.Profile,
		"rewards":        completed.Result.Rewards,
		"levelResult":    completed.Result.Level,
		"leaderboard":    completed.Result.Leaderboard,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
