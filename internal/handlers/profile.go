package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/AlexTayron/task-habit/internal/store"
	"github.com/AlexTayron/task-habit/internal/validation"
)

// ProfileHandler handles profile reads and edits
type ProfileHandler struct {
	registry *Registry
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(registry *Registry) *ProfileHandler {
	return &ProfileHandler{registry: registry}
}

// RegisterRoutes registers profile routes on the given router.
// The router should already carry the /profile prefix.
func (h *ProfileHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("", h.GetProfile).Methods("GET")
	r.HandleFunc("", h.UpdateProfile).Methods("PATCH")
}

// UpdateProfileRequest represents a profile edit
type UpdateProfileRequest struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	AvatarURL *string `json:"avatar_url,omitempty" validate:"omitempty,url,max=2000"`
}

// GetProfile returns the profile held in the user's session state
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	orch, ok := orchestratorFor(w, r, h.registry)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, orch.Container().Profile())
}

// UpdateProfile edits the user's profile
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	orch, ok := orchestratorFor(w, r, h.registry)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	patch := store.UserPatch{AvatarURL: req.AvatarURL}
	if req.Name != nil {
		name := validation.SanitizeText(*req.Name)
		patch.Name = &name
	}

	outcome := orch.UpdateProfile(r.Context(), patch)
	respondOutcome(w, outcome, http.StatusOK, orch.Container().Profile())
}
