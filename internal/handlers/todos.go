package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/AlexTayron/task-habit/internal/models"
	"github.com/AlexTayron/task-habit/internal/store"
	"github.com/AlexTayron/task-habit/internal/validation"
)

// TodoHandler handles todo-related requests
type TodoHandler struct {
	registry *Registry
}

// NewTodoHandler creates a new todo handler
func NewTodoHandler(registry *Registry) *TodoHandler {
	return &TodoHandler{registry: registry}
}

// RegisterRoutes registers todo routes on the given router.
// The router should already carry the /todos prefix.
func (h *TodoHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.ListTodos).Methods("GET")
	r.HandleFunc("", h.CreateTodo).Methods("POST")
	r.HandleFunc("/{id}", h.UpdateTodo).Methods("PATCH")
	r.HandleFunc("/{id}", h.DeleteTodo).Methods("DELETE")
	r.HandleFunc("/{id}/toggle", h.ToggleTodo).Methods("POST")
}

// CreateTodoRequest represents a create todo request
type CreateTodoRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=500"`
	Description string `json:"description" validate:"max=10000"`
}

// UpdateTodoRequest represents an update todo request
type UpdateTodoRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=500"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=10000"`
	Completed   *bool   `json:"completed,omitempty"`
}

// ListTodos returns every todo in the user's session state
func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	orch, ok := orchestratorFor(w, r, h.registry)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, orch.Container().Todos())
}

// CreateTodo creates a new todo
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	orch, ok := orchestratorFor(w, r, h.registry)
	if !ok {
		return
	}

	var req CreateTodoRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	draft := &models.Todo{
		ID:          uuid.New(),
		UserID:      orch.User().ID,
		Title:       validation.SanitizeText(req.Title),
		Description: validation.SanitizeText(req.Description),
	}

	outcome := orch.CreateTodo(r.Context(), draft)
	respondOutcome(w, outcome, http.StatusCreated, draft)
}

// UpdateTodo applies a partial update to an existing todo
func (h *TodoHandler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	orch, ok := orchestratorFor(w, r, h.registry)
	if !ok {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req UpdateTodoRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	patch := store.TodoPatch{Completed: req.Completed}
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

	outcome := orch.UpdateTodo(r.Context(), id, patch)
	todo, _ := orch.Container().FindTodo(id)
	respondOutcome(w, outcome, http.StatusOK, todo)
}

// DeleteTodo deletes a todo
func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	orch, ok := orchestratorFor(w, r, h.registry)
	if !ok {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	outcome := orch.DeleteTodo(r.Context(), id)
	respondOutcome(w, outcome, http.StatusOK, nil)
}

// ToggleTodo flips a todo's completed flag
func (h *TodoHandler) ToggleTodo(w http.ResponseWriter, r *http.Request) {
	orch, ok := orchestratorFor(w, r, h.registry)
	if !ok {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	outcome := orch.ToggleTodo(r.Context(), id)
	todo, _ := orch.Container().FindTodo(id)
	respondOutcome(w, outcome, http.StatusOK, todo)
}
