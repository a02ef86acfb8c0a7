package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/AlexTayron/task-habit/internal/store"
	syncpkg "github.com/AlexTayron/task-habit/internal/sync"
)

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]any{
		"success":   true,
		"data":      data,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// sanitizeErrorMessage removes internal details from error messages
func sanitizeErrorMessage(message string) string {
	if len(message) > 200 {
		message = message[:200] + "..."
	}
	return message
}

// respondJSONError sends an error JSON response with sanitized error messages
func respondJSONError(w http.ResponseWriter, status int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]any{
		"success":   false,
		"error":     errorType,
		"message":   sanitizeErrorMessage(message),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// respondOutcome maps an orchestrator outcome to an HTTP response. The
// outcome rides along in the body so the frontend can surface it as a
// notification; data carries the affected entity when there is one.
func respondOutcome(w http.ResponseWriter, outcome *syncpkg.Outcome, okStatus int, data any) {
	if outcome.OK() {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(okStatus)

		response := map[string]any{
			"success":   true,
			"data":      data,
			"outcome":   outcome,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
		return
	}

	status := http.StatusInternalServerError
	var validationErr *store.ValidationError
	switch {
	case errors.As(outcome.Err, &validationErr):
		status = http.StatusBadRequest
	case syncpkg.IsNotFound(outcome.Err):
		status = http.StatusNotFound
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]any{
		"success":   false,
		"error":     outcome.Title,
		"message":   sanitizeErrorMessage(outcome.Message),
		"outcome":   outcome,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
