package oidc

import (
	"context"
	"fmt"

	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/AlexTayron/task-habit/internal/models"
)

// Verifier verifies identity tokens against a provider's key set
type Verifier struct {
	jwksManager *JWKSManager
	issuer      string
}

// NewVerifier creates a new token verifier
func NewVerifier(jwksManager *JWKSManager, issuer string) *Verifier {
	return &Verifier{
		jwksManager: jwksManager,
		issuer:      issuer,
	}
}

// Verify checks a token's signature and standard claims and extracts the
// identity claims the rest of the app works with.
func (v *Verifier) Verify(ctx context.Context, tokenString string, jwksURL string) (*models.JWTClaims, error) {
	keys, err := v.jwksManager.GetJWKS(ctx, jwksURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get JWKS: %w", err)
	}

	token, err := jwt.Parse([]byte(tokenString), jwt.WithKeySet(keys), jwt.WithValidate(true))
	if err != nil {
		return nil, fmt.Errorf("failed to parse/verify token: %w", err)
	}

	iss, ok := token.Get("iss")
	if !ok {
		return nil, fmt.Errorf("token missing issuer claim")
	}
	if issStr, ok := iss.(string); !ok || issStr != v.issuer {
		return nil, fmt.Errorf("token issuer mismatch: expected %s, got %v", v.issuer, iss)
	}

	claims := &models.JWTClaims{
		Sub:   stringClaim(token, "sub"),
		Email: stringClaim(token, "email"),
		Name:  stringClaim(token, "name"),
		Iss:   stringClaim(token, "iss"),
	}

	if exp, ok := token.Get("exp"); ok {
		if expFloat, ok := exp.(float64); ok {
			claims.Exp = int64(expFloat)
		}
	}
	if iat, ok := token.Get("iat"); ok {
		if iatFloat, ok := iat.(float64); ok {
			claims.Iat = int64(iatFloat)
		}
	}
	if aud, ok := token.Get("aud"); ok {
		switch v := aud.(type) {
		case string:
			claims.Aud = v
		case []any:
			if len(v) > 0 {
				if audStr, ok := v[0].(string); ok {
					claims.Aud = audStr
				}
			}
		}
	}

	return claims, nil
}

func stringClaim(token jwt.Token, name string) string {
	if raw, ok := token.Get(name); ok {
		if s, ok := raw.(string); ok {
			return s
		}
	}
	return ""
}
