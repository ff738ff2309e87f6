package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyquest/studyquest/internal/progression"
)

type stubLister struct {
	profiles []progression.Progression
	err      error
}

func (s *stubLister) ListAll(ctx context.Context) ([]progression.Progression, error) {
	return s.profiles, s.err
}

type stubSnapshots struct {
	data []byte
	err  error
}

func (s *stubSnapshots) LatestEntries(ctx context.Context, strategy string) ([]byte, error) {
	return s.data, s.err
}

func twoUserPopulation() []progression.Progression {
	high := progression.New("winner")
	high.Courses["math"] = &progression.CourseRecord{HighScore: 50}
	low := progression.New("runner")
	low.Courses["math"] = &progression.CourseRecord{HighScore: 30}
	return []progression.Progression{*low, *high}
}

func newTestHandler(lister ProfileLister, snapshots SnapshotSource) *HTTPHandler {
	svc := NewService(lister, nil, zerolog.Nop(), ServiceOptions{})
	return NewHTTPHandler(svc, snapshots, nil, zerolog.Nop())
}

func TestHandleGetSortByScoreWithLimit(t *testing.T) {
	h := newTestHandler(&stubLister{profiles: twoUserPopulation()}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/leaderboard?sortBy=score&limit=1", nil)
	rec := httptest.NewRecorder()
	h.HandleGet(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp leaderboardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "score", resp.SortBy)
	assert.Equal(t, 2, resp.Total, "total covers the whole population, not the page")
	require.Len(t, resp.Leaderboard, 1)
	assert.Equal(t, "winner", resp.Leaderboard[0].Username)
	assert.Equal(t, 50, resp.Leaderboard[0].Score)
	assert.Equal(t, 1, resp.Leaderboard[0].Rank)
}

func TestHandleGetDefaults(t *testing.T) {
	h := newTestHandler(&stubLister{profiles: twoUserPopulation()}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil)
	rec := httptest.NewRecorder()
	h.HandleGet(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp leaderboardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "total", resp.SortBy, "missing sortBy falls back to total")
	assert.Len(t, resp.Leaderboard, 2)
}

func TestHandleGetEmptyPopulation(t *testing.T) {
	h := newTestHandler(&stubLister{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil)
	rec := httptest.NewRecorder()
	h.HandleGet(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp leaderboardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 0, resp.Total)
	assert.NotNil(t, resp.Leaderboard)
}

func TestHandleGetRejectsNonGet(t *testing.T) {
	h := newTestHandler(&stubLister{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/leaderboard", nil)
	rec := httptest.NewRecorder()
	h.HandleGet(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleGetSnapshotFallback(t *testing.T) {
	archived := []Entry{
		{Rank: 1, Username: "cached", Score: 120},
		{Rank: 2, Username: "stale", Score: 80},
	}
	data, err := json.Marshal(archived)
	require.NoError(t, err)

	h := newTestHandler(&stubLister{err: errors.New("store down")}, &stubSnapshots{data: data})

	req := httptest.NewRequest(http.MethodGet, "/api/leaderboard?limit=1", nil)
	rec := httptest.NewRecorder()
	h.HandleGet(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp leaderboardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
	require.Len(t, resp.Leaderboard, 1)
	assert.Equal(t, "cached", resp.Leaderboard[0].Username)
}

func TestHandleGetFailsWhenStoreAndSnapshotsDown(t *testing.T) {
	h := newTestHandler(&stubLister{err: errors.New("store down")}, &stubSnapshots{err: errors.New("db down")})

	req := httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil)
	rec := httptest.NewRecorder()
	h.HandleGet(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
