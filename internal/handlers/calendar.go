package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/AlexTayron/task-habit/internal/calendar"
	"github.com/AlexTayron/task-habit/internal/middleware"
)

// CalendarHandler handles the calendar connection lifecycle and import
type CalendarHandler struct {
	registry *Registry
}

// NewCalendarHandler creates a new calendar handler
func NewCalendarHandler(registry *Registry) *CalendarHandler {
	return &CalendarHandler{registry: registry}
}

// RegisterRoutes registers calendar routes on the given router.
// The router should already carry the /calendar prefix.
func (h *CalendarHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/auth-url", h.GetAuthURL).Methods("GET")
	r.HandleFunc("/connect", h.Connect).Methods("POST")
	r.HandleFunc("/disconnect", h.Disconnect).Methods("POST")
	r.HandleFunc("/status", h.Status).Methods("GET")
	r.HandleFunc("/import", h.Import).Methods("POST")
}

// ConnectRequest carries the authorization code from the OAuth redirect
type ConnectRequest struct {
	Code string `json:"code" validate:"required"`
}

// StatusResponse reports the calendar connection state
type StatusResponse struct {
	Configured bool `json:"configured"`
	Connected  bool `json:"connected"`
}

// GetAuthURL returns the URL the user visits to grant calendar access
func (h *CalendarHandler) GetAuthURL(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessionFor(w, r)
	if !ok {
		return
	}
	if session == nil {
		respondJSONError(w, http.StatusServiceUnavailable, "Service Unavailable", "Calendar integration is not configured")
		return
	}

	state := r.URL.Query().Get("state")
	respondJSON(w, http.StatusOK, map[string]string{"auth_url": session.AuthCodeURL(state)})
}

// Connect exchanges the authorization code, connects the session, and kicks
// off the one-time event import.
func (h *CalendarHandler) Connect(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	session, err := h.registry.SessionFor(r.Context(), user)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to load session state")
		return
	}
	if session == nil {
		respondJSONError(w, http.StatusServiceUnavailable, "Service Unavailable", "Calendar integration is not configured")
		return
	}

	var req ConnectRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	if err := session.ConnectWithCode(r.Context(), req.Code); err != nil {
		respondJSONError(w, http.StatusBadGateway, "Bad Gateway", "Calendar sign-in failed")
		return
	}

	orch, err := h.registry.ForUser(r.Context(), user)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to load session state")
		return
	}
	orch.ImportAfterConnect(r.Context())

	respondJSON(w, http.StatusOK, StatusResponse{Configured: true, Connected: true})
}

// Disconnect drops the calendar token. Local data and stored event
// references are left in place.
func (h *CalendarHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessionFor(w, r)
	if !ok {
		return
	}
	if session != nil {
		session.Disconnect()
	}
	respondJSON(w, http.StatusOK, StatusResponse{Configured: session != nil, Connected: false})
}

// Status reports whether calendar integration is configured and connected
func (h *CalendarHandler) Status(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessionFor(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, StatusResponse{
		Configured: session != nil,
		Connected:  session != nil && session.Connected(),
	})
}

// Import pulls upcoming events into the task board
func (h *CalendarHandler) Import(w http.ResponseWriter, r *http.Request) {
	orch, ok := orchestratorFor(w, r, h.registry)
	if !ok {
		return
	}

	outcome := orch.ImportCalendarEvents(r.Context())
	respondOutcome(w, outcome, http.StatusOK, orch.Container().Tasks())
}

// sessionFor resolves the user's calendar session. A nil session with
// ok=true means calendar integration is not configured.
func (h *CalendarHandler) sessionFor(w http.ResponseWriter, r *http.Request) (*calendar.Session, bool) {
	user := middleware.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return nil, false
	}

	session, err := h.registry.SessionFor(r.Context(), user)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to load session state")
		return nil, false
	}
	return session, true
}
