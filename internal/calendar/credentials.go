package calendar

import (
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"gopkg.in/yaml.v3"
)

// Credentials holds the OAuth2 client registration for the calendar API
type Credentials struct {
	ClientID     string   `yaml:"client_id"`
	ClientSecret string   `yaml:"client_secret"`
	RedirectURI  string   `yaml:"redirect_uri"`
	AuthURL      string   `yaml:"auth_url"`
	TokenURL     string   `yaml:"token_url"`
	Scopes       []string `yaml:"scopes"`
}

const (
	defaultAuthURL  = "https://accounts.google.com/o/oauth2/auth"
	defaultTokenURL = "https://oauth2.googleapis.com/token"
)

var defaultScopes = []string{
	"https://www.googleapis.com/auth/calendar",
	"https://www.googleapis.com/auth/calendar.events",
}

// LoadCredentials reads the OAuth2 client registration from a YAML file
func LoadCredentials(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read calendar credentials: %w", err)
	}

	creds := &Credentials{}
	if err := yaml.Unmarshal(data, creds); err != nil {
		return nil, fmt.Errorf("failed to parse calendar credentials: %w", err)
	}

	if creds.ClientID == "" {
		return nil, fmt.Errorf("calendar credentials missing client_id")
	}
	if creds.AuthURL == "" {
		creds.AuthURL = defaultAuthURL
	}
	if creds.TokenURL == "" {
		creds.TokenURL = defaultTokenURL
	}
	if len(creds.Scopes) == 0 {
		creds.Scopes = defaultScopes
	}

	return creds, nil
}

// OAuthConfig builds the oauth2 config for the credentials
func (c *Credentials) OAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURL:  c.RedirectURI,
		Scopes:       c.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  c.AuthURL,
			TokenURL: c.TokenURL,
		},
	}
}
