package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/AlexTayron/task-habit/internal/config"
	"github.com/AlexTayron/task-habit/internal/models"
	"github.com/AlexTayron/task-habit/internal/store"
)

// NewOIDCCmd creates the OIDC configuration command
func NewOIDCCmd() *cobra.Command {
	var issuer, domain, clientID, clientSecret, redirectURI string

	cmd := &cobra.Command{
		Use:   "oidc <provider-name>",
		Short: "Configure OIDC provider",
		Long:  "Configure an OIDC provider for authentication. Provider name can be any identifier (e.g., 'cognito', 'okta', 'auth0')",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider := args[0]
			if provider == "" {
				return fmt.Errorf("provider name cannot be empty")
			}
			if issuer == "" || clientID == "" || redirectURI == "" {
				return fmt.Errorf("required flags: --issuer, --client-id, --redirect-uri (--client-secret is optional for public clients)")
			}

			db, err := openDB()
			if err != nil {
				return err
			}
			defer func() {
				if err := db.Close(); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", err)
				}
			}()

			oidcRepo := store.NewOIDCConfigRepository(db)
			ctx := context.Background()
			jwksURL := issuer + "/.well-known/jwks.json"

			existing, err := oidcRepo.GetByProvider(ctx, provider)
			if err == nil && existing != nil {
				existing.Issuer = issuer
				existing.ClientID = clientID
				existing.RedirectURI = redirectURI
				existing.JWKSUrl = &jwksURL
				existing.Domain = nil
				if domain != "" {
					existing.Domain = &domain
				}
				existing.ClientSecret = nil
				if clientSecret != "" {
					existing.ClientSecret = &clientSecret
				}

				if err := oidcRepo.Update(ctx, existing); err != nil {
					return fmt.Errorf("failed to update OIDC config: %w", err)
				}
				fmt.Printf("Updated OIDC configuration for provider: %s\n", provider)
				return nil
			}

			oidcConfig := &models.OIDCConfig{
				ID:          uuid.New(),
				Provider:    provider,
				Issuer:      issuer,
				ClientID:    clientID,
				RedirectURI: redirectURI,
				JWKSUrl:     &jwksURL,
			}
			if domain != "" {
				oidcConfig.Domain = &domain
			}
			if clientSecret != "" {
				oidcConfig.ClientSecret = &clientSecret
			}

			if err := oidcRepo.Create(ctx, oidcConfig); err != nil {
				return fmt.Errorf("failed to create OIDC config: %w", err)
			}
			fmt.Printf("Created OIDC configuration for provider: %s\n", provider)
			return nil
		},
	}

	cmd.Flags().StringVar(&issuer, "issuer", "", "OIDC issuer URL (required)")
	cmd.Flags().StringVar(&domain, "domain", "", "OAuth2 domain (optional, for custom provider domains)")
	cmd.Flags().StringVar(&clientID, "client-id", "", "OAuth2 client ID (required)")
	cmd.Flags().StringVar(&clientSecret, "client-secret", "", "OAuth2 client secret (optional for public clients)")
	cmd.Flags().StringVar(&redirectURI, "redirect-uri", "", "OAuth2 redirect URI (required)")

	return cmd
}

// openDB loads config and connects to the database
func openDB() (*store.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	db, err := store.New(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}
