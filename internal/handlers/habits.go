package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/AlexTayron/task-habit/internal/models"
	"github.com/AlexTayron/task-habit/internal/store"
	"github.com/AlexTayron/task-habit/internal/validation"
)

// HabitHandler handles habit-related requests
type HabitHandler struct {
	registry *Registry
}

// NewHabitHandler creates a new habit handler
func NewHabitHandler(registry *Registry) *HabitHandler {
	return &HabitHandler{registry: registry}
}

// RegisterRoutes registers habit routes on the given router.
// The router should already carry the /habits prefix.
func (h *HabitHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.ListHabits).Methods("GET")
	r.HandleFunc("", h.CreateHabit).Methods("POST")
	r.HandleFunc("/{id}", h.UpdateHabit).Methods("PATCH")
	r.HandleFunc("/{id}", h.DeleteHabit).Methods("DELETE")
	r.HandleFunc("/{id}/sessions", h.ListSessions).Methods("GET")
	r.HandleFunc("/{id}/sessions", h.RecordSession).Methods("POST")
}

// CreateHabitRequest represents a create habit request
type CreateHabitRequest struct {
	Title         string  `json:"title" validate:"required,min=1,max=500"`
	Description   string  `json:"description" validate:"max=10000"`
	GoalType      string  `json:"goal_type" validate:"required"`
	GoalTarget    float64 `json:"goal_target" validate:"required,gt=0"`
	Frequency     string  `json:"frequency" validate:"required,habit_frequency"`
	PreferredTime *string `json:"preferred_time,omitempty"`
}

// UpdateHabitRequest represents an update habit request
type UpdateHabitRequest struct {
	Title         *string  `json:"title,omitempty" validate:"omitempty,min=1,max=500"`
	Description   *string  `json:"description,omitempty" validate:"omitempty,max=10000"`
	GoalType      *string  `json:"goal_type,omitempty"`
	GoalTarget    *float64 `json:"goal_target,omitempty" validate:"omitempty,gt=0"`
	Frequency     *string  `json:"frequency,omitempty" validate:"omitempty,habit_frequency"`
	PreferredTime *string  `json:"preferred_time,omitempty"`
}

// RecordSessionRequest represents a habit session
type RecordSessionRequest struct {
	Quantity   float64    `json:"quantity" validate:"required,gt=0"`
	Completed  bool       `json:"completed"`
	OccurredAt *time.Time `json:"occurred_at,omitempty"`
}

// ListHabits returns every habit in the user's session state
func (h *HabitHandler) ListHabits(w http.ResponseWriter, r *http.Request) {
	orch, ok := orchestratorFor(w, r, h.registry)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, orch.Container().Habits())
}

// CreateHabit creates a new habit
func (h *HabitHandler) CreateHabit(w http.ResponseWriter, r *http.Request) {
	orch, ok := orchestratorFor(w, r, h.registry)
	if !ok {
		return
	}

	var req CreateHabitRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	draft := &models.Habit{
		ID:            uuid.New(),
		UserID:        orch.User().ID,
		Title:         validation.SanitizeText(req.Title),
		Description:   validation.SanitizeText(req.Description),
		GoalType:      models.HabitGoalType(req.GoalType),
		GoalTarget:    req.GoalTarget,
		Frequency:     models.HabitFrequency(req.Frequency),
		PreferredTime: req.PreferredTime,
	}

	outcome := orch.CreateHabit(r.Context(), draft)
	respondOutcome(w, outcome, http.StatusCreated, draft)
}

// UpdateHabit applies a partial update to an existing habit
func (h *HabitHandler) UpdateHabit(w http.ResponseWriter, r *http.Request) {
	orch, ok := orchestratorFor(w, r, h.registry)
	if !ok {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req UpdateHabitRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	patch := store.HabitPatch{
		GoalTarget:    req.GoalTarget,
		PreferredTime: req.PreferredTime,
	}
	if req.Title != nil {
		title := validation.SanitizeText(*req.Title)
		if title == "" {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", "Title cannot be empty")
			return
		}
		patch.Title = &title
	}
	if req.Description != nil {
		desc := validation.SanitizeText(*req.Description)
		patch.Description = &desc
	}
	if req.GoalType != nil {
		goalType := models.HabitGoalType(*req.GoalType)
		patch.GoalType = &goalType
	}
	if req.Frequency != nil {
		frequency := models.HabitFrequency(*req.Frequency)
		patch.Frequency = &frequency
	}

	outcome := orch.UpdateHabit(r.Context(), id, patch)
	habit, _ := orch.Container().FindHabit(id)
	respondOutcome(w, outcome, http.StatusOK, habit)
}

// DeleteHabit deletes a habit and its recorded sessions
func (h *HabitHandler) DeleteHabit(w http.ResponseWriter, r *http.Request) {
	orch, ok := orchestratorFor(w, r, h.registry)
	if !ok {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	outcome := orch.DeleteHabit(r.Context(), id)
	respondOutcome(w, outcome, http.StatusOK, nil)
}

// ListSessions returns the recorded sessions for one habit
func (h *HabitHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	orch, ok := orchestratorFor(w, r, h.registry)
	if !ok {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	sessions := []models.HabitSession{}
	for _, s := range orch.Container().Sessions() {
		if s.HabitID == id {
			sessions = append(sessions, s)
		}
	}
	respondJSON(w, http.StatusOK, sessions)
}

// RecordSession records a habit session and advances the habit's progress
func (h *HabitHandler) RecordSession(w http.ResponseWriter, r *http.Request) {
	orch, ok := orchestratorFor(w, r, h.registry)
	if !ok {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req RecordSessionRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	occurredAt := time.Now().UTC()
	if req.OccurredAt != nil {
		occurredAt = *req.OccurredAt
	}

	draft := &models.HabitSession{
		ID:         uuid.New(),
		UserID:     orch.User().ID,
		HabitID:    id,
		Quantity:   req.Quantity,
		Completed:  req.Completed,
		OccurredAt: occurredAt,
	}

	outcome := orch.RecordHabitSession(r.Context(), draft)
	habit, _ := orch.Container().FindHabit(id)
	respondOutcome(w, outcome, http.StatusCreated, habit)
}
