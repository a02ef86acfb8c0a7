package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/AlexTayron/task-habit/internal/middleware"
	"github.com/AlexTayron/task-habit/internal/models"
	"github.com/AlexTayron/task-habit/internal/store"
	syncpkg "github.com/AlexTayron/task-habit/internal/sync"
	"github.com/AlexTayron/task-habit/internal/validation"
)

// MaxTitleLength is the maximum length for titles across all entities
const MaxTitleLength = 500

// MaxDescriptionLength is the maximum length for free-text descriptions
const MaxDescriptionLength = 10000

// TaskHandler handles task-related requests
type TaskHandler struct {
	registry *Registry
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(registry *Registry) *TaskHandler {
	return &TaskHandler{registry: registry}
}

// RegisterRoutes registers task routes on the given router.
// The router should already carry the /tasks prefix.
func (h *TaskHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.ListTasks).Methods("GET")
	r.HandleFunc("", h.CreateTask).Methods("POST")
	r.HandleFunc("/{id}", h.UpdateTask).Methods("PATCH")
	r.HandleFunc("/{id}", h.DeleteTask).Methods("DELETE")
	r.HandleFunc("/{id}/move", h.MoveTask).Methods("POST")
}

// CreateTaskRequest represents a create task request
type CreateTaskRequest struct {
	Title       string     `json:"title" validate:"required,min=1,max=500"`
	Description string     `json:"description" validate:"max=10000"`
	Status      string     `json:"status" validate:"omitempty,task_status"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
}

// UpdateTaskRequest represents an update task request. Absent fields are
// left untouched.
type UpdateTaskRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,min=1,max=500"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=10000"`
	Status      *string    `json:"status,omitempty" validate:"omitempty,task_status"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
}

// MoveTaskRequest represents a board move request
type MoveTaskRequest struct {
	Status string `json:"status" validate:"required,task_status"`
}

// ListTasks returns every task in the user's session state
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	orch, ok := orchestratorFor(w, r, h.registry)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, orch.Container().Tasks())
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	orch, ok := orchestratorFor(w, r, h.registry)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	req.Title = validation.SanitizeText(req.Title)
	req.Description = validation.SanitizeText(req.Description)

	status := models.TaskStatusTodo
	if req.Status != "" {
		status = models.TaskStatus(req.Status)
	}

	draft := &models.Task{
		ID:          uuid.New(),
		UserID:      orch.User().ID,
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	}

	outcome := orch.CreateTask(r.Context(), draft)
	respondOutcome(w, outcome, http.StatusCreated, draft)
}

// UpdateTask applies a partial update to an existing task
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	orch, ok := orchestratorFor(w, r, h.registry)
	if !ok {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	patch := store.TaskPatch{
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
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
	if req.Status != nil {
		status := models.TaskStatus(*req.Status)
		patch.Status = &status
	}

	outcome := orch.UpdateTask(r.Context(), id, patch)
	task, _ := orch.Container().FindTask(id)
	respondOutcome(w, outcome, http.StatusOK, task)
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	orch, ok := orchestratorFor(w, r, h.registry)
	if !ok {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	outcome := orch.DeleteTask(r.Context(), id)
	respondOutcome(w, outcome, http.StatusOK, nil)
}

// MoveTask moves a task to another board column
func (h *TaskHandler) MoveTask(w http.ResponseWriter, r *http.Request) {
	orch, ok := orchestratorFor(w, r, h.registry)
	if !ok {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req MoveTaskRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	outcome := orch.MoveTask(r.Context(), id, models.TaskStatus(req.Status))
	respondOutcome(w, outcome, http.StatusOK, orch.Container().Tasks())
}

// orchestratorFor resolves the authenticated user's orchestrator, writing
// the error response itself when it cannot.
func orchestratorFor(w http.ResponseWriter, r *http.Request, registry *Registry) (*syncpkg.Orchestrator, bool) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return nil, false
	}

	orch, err := registry.ForUser(r.Context(), user)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to load session state")
		return nil, false
	}
	return orch, true
}

// pathID parses the {id} path variable
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid id")
		return uuid.Nil, false
	}
	return id, true
}

// decodeRequest decodes and validates a JSON request body, writing the
// error response itself on failure.
func decodeRequest(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		if maxBytesErr, ok := err.(*http.MaxBytesError); ok {
			respondJSONError(w, http.StatusRequestEntityTooLarge, "Request Entity Too Large", fmt.Sprintf("Request body exceeds maximum size of %d bytes", maxBytesErr.Limit))
			return false
		}
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return false
	}

	if err := validation.Validate.Struct(req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", fmt.Sprintf("Validation failed: %s", validationErrors[0].Error()))
			return false
		}
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Validation failed")
		return false
	}
	return true
}
