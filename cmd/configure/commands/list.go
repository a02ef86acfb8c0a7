package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AlexTayron/task-habit/internal/store"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List configured OIDC providers",
		Long:  "List all configured OIDC providers",
		RunE: func(cmd *cobra.Command, args []string) error {
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
			configs, err := oidcRepo.GetAll(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list OIDC configs: %w", err)
			}

			if len(configs) == 0 {
				fmt.Println("No OIDC providers configured")
				return nil
			}

			fmt.Println("Configured OIDC providers:")
			for _, c := range configs {
				fmt.Printf("  - Provider: %s\n", c.Provider)
				fmt.Printf("    Issuer: %s\n", c.Issuer)
				fmt.Printf("    Client ID: %s\n", c.ClientID)
				fmt.Printf("    Redirect URI: %s\n", c.RedirectURI)
				if c.JWKSUrl != nil {
					fmt.Printf("    JWKS URL: %s\n", *c.JWKSUrl)
				}
				fmt.Println()
			}

			return nil
		},
	}

	return cmd
}
