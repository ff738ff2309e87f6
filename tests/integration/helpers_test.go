//go:build integration
// +build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"
)

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func baseURL() string {
	return envOrDefault("INTEGRATION_BASE_URL", "http://localhost:8080")
}

func makeJSONRequest(t *testing.T, method, url string, payload interface{}) *http.Response {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload failed: %v", err)
		}
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("build request failed: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

type submitResponse struct {
	Success bool `json:"success"`
	Rank    *int `json:"rank"`
	Profile struct {
		Username string `json:"username"`
		Level    int    `json:"level"`
		Exp      int    `json:"exp"`
		Coins    int    `json:"coins"`
	} `json:"profile"`
	Leaderboard []map[string]interface{} `json:"leaderboard"`
}

func submitScore(t *testing.T, username string, score int, course string) submitResponse {
	t.Helper()

	payload := map[string]interface{}{
		"username":   username,
		"score":      score,
		"time":       90,
		"courseName": course,
	}
	resp := makeJSONRequest(t, "POST", fmt.Sprintf("%s/api/submit-score", baseURL()), payload)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("submit-score returned %d", resp.StatusCode)
	}

	var out submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode submit response failed: %v", err)
	}
	return out
}

func deleteProfile(t *testing.T, username string) {
	t.Helper()

	resp := makeJSONRequest(t, "DELETE", fmt.Sprintf("%s/api/profile?username=%s", baseURL(), username), nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("profile delete returned %d", resp.StatusCode)
	}
}
