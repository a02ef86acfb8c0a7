package calendar

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCredentials(t *testing.T) {
	dir := t.TempDir()

	t.Run("full file", func(t *testing.T) {
		path := filepath.Join(dir, "full.yaml")
		content := `client_id: abc
client_secret: shh
redirect_uri: http://localhost:3000/callback
auth_url: https://example.com/auth
token_url: https://example.com/token
scopes:
  - https://example.com/calendar
`
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("Failed to write credentials file: %v", err)
		}

		creds, err := LoadCredentials(path)
		if err != nil {
			t.Fatalf("LoadCredentials returned error: %v", err)
		}
		if creds.ClientID != "abc" {
			t.Errorf("Expected client_id 'abc', got %q", creds.ClientID)
		}
		if creds.AuthURL != "https://example.com/auth" {
			t.Errorf("Expected configured auth_url, got %q", creds.AuthURL)
		}
		if len(creds.Scopes) != 1 {
			t.Errorf("Expected 1 scope, got %d", len(creds.Scopes))
		}

		cfg := creds.OAuthConfig()
		if cfg.ClientID != "abc" || cfg.Endpoint.TokenURL != "https://example.com/token" {
			t.Errorf("OAuthConfig did not carry the credentials: %+v", cfg)
		}
	})

	t.Run("defaults fill in", func(t *testing.T) {
		path := filepath.Join(dir, "minimal.yaml")
		if err := os.WriteFile(path, []byte("client_id: abc\n"), 0o600); err != nil {
			t.Fatalf("Failed to write credentials file: %v", err)
		}

		creds, err := LoadCredentials(path)
		if err != nil {
			t.Fatalf("LoadCredentials returned error: %v", err)
		}
		if creds.AuthURL != defaultAuthURL {
			t.Errorf("Expected default auth URL, got %q", creds.AuthURL)
		}
		if creds.TokenURL != defaultTokenURL {
			t.Errorf("Expected default token URL, got %q", creds.TokenURL)
		}
		if len(creds.Scopes) == 0 {
			t.Error("Expected default scopes to be applied")
		}
	})

	t.Run("missing client_id", func(t *testing.T) {
		path := filepath.Join(dir, "empty.yaml")
		if err := os.WriteFile(path, []byte("redirect_uri: x\n"), 0o600); err != nil {
			t.Fatalf("Failed to write credentials file: %v", err)
		}
		if _, err := LoadCredentials(path); err == nil {
			t.Error("Expected error for missing client_id")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadCredentials(filepath.Join(dir, "nope.yaml")); err == nil {
			t.Error("Expected error for missing file")
		}
	})
}
