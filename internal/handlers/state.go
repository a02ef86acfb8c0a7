package handlers

import (
	"net/http"

	"github.com/AlexTayron/task-habit/internal/models"
)

// StateHandler serves the full session state in one round trip, so the
// frontend can render everything after sign-in without per-entity fetches.
type StateHandler struct {
	registry *Registry
}

// NewStateHandler creates a new state handler
func NewStateHandler(registry *Registry) *StateHandler {
	return &StateHandler{registry: registry}
}

// StateResponse is the complete session snapshot
type StateResponse struct {
	Profile  *models.User          `json:"profile"`
	Tasks    []models.Task         `json:"tasks"`
	Habits   []models.Habit        `json:"habits"`
	Sessions []models.HabitSession `json:"habit_sessions"`
	Todos    []models.Todo         `json:"todos"`
}

// GetState returns the authenticated user's session state, bootstrapping it
// on first call.
func (h *StateHandler) GetState(w http.ResponseWriter, r *http.Request) {
	orch, ok := orchestratorFor(w, r, h.registry)
	if !ok {
		return
	}

	c := orch.Container()
	respondJSON(w, http.StatusOK, StateResponse{
		Profile:  c.Profile(),
		Tasks:    c.Tasks(),
		Habits:   c.Habits(),
		Sessions: c.Sessions(),
		Todos:    c.Todos(),
	})
}
