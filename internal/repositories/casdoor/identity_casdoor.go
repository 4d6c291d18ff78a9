package casdoor

import (
	"context"
	"fmt"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"

	"github.com/seminar-portal/portal-service/internal/models"
	"github.com/seminar-portal/portal-service/internal/repositories"
)

// CasdoorConfig holds the configuration for Casdoor connection
type CasdoorConfig struct {
	Endpoint         string
	ClientID         string
	ClientSecret     string
	Certificate      string
	OrganizationName string
	ApplicationName  string
}

// IdentityCasdoor resolves session tokens issued by Casdoor. Roles are not taken
// from the token; the profiles table is the only source of truth for them.
type IdentityCasdoor struct {
	client *casdoorsdk.Client
}

func NewIdentityCasdoor(config CasdoorConfig) repositories.IdentityProvider {
	client := casdoorsdk.NewClient(
		config.Endpoint,
		config.ClientID,
		config.ClientSecret,
		config.Certificate,
		config.OrganizationName,
		config.ApplicationName,
	)

	return &IdentityCasdoor{client: client}
}

// ResolveToken validates the JWT signature and expiry and returns the principal
func (i *IdentityCasdoor) ResolveToken(ctx context.Context, token string) (*models.Identity, error) {
	if token == "" {
		return nil, fmt.Errorf("empty token: %w", repositories.ErrNotFound)
	}

	claims, err := i.client.ParseJwtToken(token)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	return identityFromClaims(claims)
}

func identityFromClaims(claims *casdoorsdk.Claims) (*models.Identity, error) {
	if claims == nil || claims.Id == "" {
		return nil, fmt.Errorf("token carries no user id: %w", repositories.ErrNotFound)
	}

	return &models.Identity{
		ID:    claims.Id,
		Email: claims.Email,
	}, nil
}
