package calendar

import (
	"context"
	"net/http"
	"sync"

	"golang.org/x/oauth2"
)

// Session owns the calendar connection lifecycle. It replaces any ambient
// auth singleton: the orchestrator holds one session per process, checks
// Connected before any event call, and treats a disconnected session as a
// silent no-op path rather than an error.
type Session struct {
	config *oauth2.Config

	mu     sync.RWMutex
	source oauth2.TokenSource
}

// NewSession creates a disconnected session for the given client registration
func NewSession(config *oauth2.Config) *Session {
	return &Session{config: config}
}

// AuthCodeURL returns the URL a user visits to grant calendar access
func (s *Session) AuthCodeURL(state string) string {
	return s.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// ConnectWithCode exchanges an authorization code and connects the session
func (s *Session) ConnectWithCode(ctx context.Context, code string) error {
	token, err := s.config.Exchange(ctx, code)
	if err != nil {
		return calErr("sign-in", 0, err)
	}
	s.Connect(token)
	return nil
}

// Connect installs a previously obtained token. Connecting an already
// connected session replaces the token (idempotent from the caller's view).
func (s *Session) Connect(token *oauth2.Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.source = s.config.TokenSource(context.Background(), token)
}

// Disconnect drops the session's token
func (s *Session) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.source = nil
}

// Connected reports whether the session holds a token
func (s *Session) Connected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source != nil
}

// httpClient returns an authorized http client, or nil when disconnected
func (s *Session) httpClient(ctx context.Context) *http.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.source == nil {
		return nil
	}
	return oauth2.NewClient(ctx, s.source)
}
