package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// Basic mode touches no dependencies, so it runs against a checker with
// nothing wired. Extended mode needs live connections and is covered by
// integration setups.
func TestHealthChecker_BasicMode(t *testing.T) {
	t.Parallel()

	checker := NewHealthChecker(nil, nil, nil)

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()

	checker.HealthCheck(w, req)

	resp := w.Result()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected Content-Type 'application/json', got '%s'", ct)
	}

	var body HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body.Status != "healthy" {
		t.Errorf("Expected status 'healthy', got '%s'", body.Status)
	}
	if body.Timestamp == "" {
		t.Error("Expected timestamp to be set")
	}
	if body.Checks != nil {
		t.Errorf("Expected no checks in basic mode, got %v", body.Checks)
	}
}
