package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AlexTayron/task-habit/internal/store"
	syncpkg "github.com/AlexTayron/task-habit/internal/sync"
)

func TestRespondJSON(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	respondJSON(rec, http.StatusOK, map[string]string{"message": "hello"})

	resp := rec.Result()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected Content-Type 'application/json', got '%s'", ct)
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if success, ok := body["success"].(bool); !ok || !success {
		t.Error("Expected success to be true")
	}
	if _, ok := body["timestamp"].(string); !ok {
		t.Error("Expected timestamp to be present")
	}
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatal("Expected data to be present")
	}
	if data["message"] != "hello" {
		t.Errorf("Expected data.message 'hello', got %v", data["message"])
	}
}

func TestRespondJSONError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	respondJSONError(rec, http.StatusBadRequest, "Bad Request", "Title cannot be empty")

	resp := rec.Result()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if success, ok := body["success"].(bool); !ok || success {
		t.Error("Expected success to be false")
	}
	if body["error"] != "Bad Request" {
		t.Errorf("Expected error 'Bad Request', got %v", body["error"])
	}
	if body["message"] != "Title cannot be empty" {
		t.Errorf("Expected message to pass through, got %v", body["message"])
	}
}

func TestSanitizeErrorMessage_TruncatesLongMessages(t *testing.T) {
	t.Parallel()

	long := make([]byte, 300)
	for i := range long {
		long[i] = 'a'
	}

	got := sanitizeErrorMessage(string(long))
	if len(got) != 203 {
		t.Errorf("Expected truncation to 200 chars plus ellipsis, got length %d", len(got))
	}
	if got[200:] != "..." {
		t.Errorf("Expected ellipsis suffix, got %q", got[200:])
	}
}

func TestRespondOutcome_StatusMapping(t *testing.T) {
	t.Parallel()

	okOutcome := &syncpkg.Outcome{Title: "Task created", Severity: syncpkg.SeveritySuccess}
	warnOutcome := &syncpkg.Outcome{Title: "Task created", Severity: syncpkg.SeverityWarning, Err: errors.New("calendar down")}
	validationOutcome := &syncpkg.Outcome{
		Title:    "Task not created",
		Severity: syncpkg.SeverityError,
		Err:      &store.ValidationError{Field: "title", Reason: "is required"},
	}
	storeOutcome := &syncpkg.Outcome{
		Title:    "Task not created",
		Severity: syncpkg.SeverityError,
		Err:      &store.StoreError{Op: "create task", Err: errors.New("connection refused")},
	}

	tests := []struct {
		name       string
		outcome    *syncpkg.Outcome
		okStatus   int
		wantStatus int
		wantOK     bool
	}{
		{"success uses the ok status", okOutcome, http.StatusCreated, http.StatusCreated, true},
		{"warning still uses the ok status", warnOutcome, http.StatusCreated, http.StatusCreated, true},
		{"validation failure maps to 400", validationOutcome, http.StatusCreated, http.StatusBadRequest, false},
		{"store failure maps to 500", storeOutcome, http.StatusCreated, http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			respondOutcome(rec, tt.outcome, tt.okStatus, nil)

			resp := rec.Result()
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, resp.StatusCode)
			}

			var body map[string]any
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if success, _ := body["success"].(bool); success != tt.wantOK {
				t.Errorf("Expected success=%v, got %v", tt.wantOK, success)
			}

			outcome, ok := body["outcome"].(map[string]any)
			if !ok {
				t.Fatal("Expected outcome to be present in the body")
			}
			if outcome["severity"] != string(tt.outcome.Severity) {
				t.Errorf("Expected severity %q, got %v", tt.outcome.Severity, outcome["severity"])
			}
			if _, hasErr := outcome["Err"]; hasErr {
				t.Error("Expected the underlying error to stay out of the response")
			}
		})
	}
}
