package oidc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/AlexTayron/task-habit/internal/models"
	"github.com/AlexTayron/task-habit/internal/store"
)

// Provider manages OIDC provider configuration
type Provider struct {
	repo *store.OIDCConfigRepository
}

// NewProvider creates a new OIDC provider manager
func NewProvider(repo *store.OIDCConfigRepository) *Provider {
	return &Provider{repo: repo}
}

// GetConfig retrieves OIDC configuration for a provider
func (p *Provider) GetConfig(ctx context.Context, providerName string) (*models.OIDCConfig, error) {
	config, err := p.repo.GetByProvider(ctx, providerName)
	if err != nil {
		return nil, fmt.Errorf("failed to get OIDC config: %w", err)
	}
	return config, nil
}

// LoginConfig contains OIDC login configuration for the frontend
type LoginConfig struct {
	AuthorizationEndpoint string `json:"authorization_endpoint"`
	TokenEndpoint         string `json:"token_endpoint"`
	ClientID              string `json:"client_id"`
	RedirectURI           string `json:"redirect_uri"`
	Scope                 string `json:"scope"`
}

// GetLoginConfig returns the configuration the frontend needs to start an
// OIDC login. Endpoints come from the provider's discovery document when
// reachable; otherwise they are derived from the issuer, or from the
// configured OAuth2 domain when one is set.
func (p *Provider) GetLoginConfig(ctx context.Context, providerName string) (*LoginConfig, error) {
	config, err := p.GetConfig(ctx, providerName)
	if err != nil {
		return nil, err
	}

	authEndpoint, tokenEndpoint := discoverEndpoints(ctx, config.Issuer)

	if config.Domain != nil && *config.Domain != "" {
		base := *config.Domain
		if !strings.HasPrefix(base, "https://") {
			base = "https://" + base
		}
		authEndpoint = base + "/oauth2/authorize"
		tokenEndpoint = base + "/oauth2/token"
	}

	if authEndpoint == "" {
		authEndpoint = issuerJoin(config.Issuer, "oauth2/authorize")
	}
	if tokenEndpoint == "" {
		tokenEndpoint = issuerJoin(config.Issuer, "oauth2/token")
	}

	return &LoginConfig{
		AuthorizationEndpoint: authEndpoint,
		TokenEndpoint:         tokenEndpoint,
		ClientID:              config.ClientID,
		RedirectURI:           config.RedirectURI,
		Scope:                 "openid email profile",
	}, nil
}

// discoverEndpoints reads the issuer's discovery document. Failures are not
// fatal; callers fall back to issuer-derived endpoints.
func discoverEndpoints(ctx context.Context, issuer string) (authEndpoint, tokenEndpoint string) {
	discoveryURL := issuerJoin(issuer, ".well-known/openid-configuration")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, discoveryURL, nil)
	if err != nil {
		return "", ""
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		if resp != nil {
			_ = resp.Body.Close()
		}
		return "", ""
	}
	defer resp.Body.Close()

	var discovery struct {
		AuthorizationEndpoint string `json:"authorization_endpoint"`
		TokenEndpoint         string `json:"token_endpoint"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&discovery); err != nil {
		return "", ""
	}
	return discovery.AuthorizationEndpoint, discovery.TokenEndpoint
}

func issuerJoin(issuer, path string) string {
	return strings.TrimSuffix(issuer, "/") + "/" + path
}
