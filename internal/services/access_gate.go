package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/seminar-portal/portal-service/internal/models"
	"github.com/seminar-portal/portal-service/internal/repositories"
)

type accessGate struct {
	identity repositories.IdentityProvider
	logger   *slog.Logger
}

func NewAccessGate(identity repositories.IdentityProvider, logger *slog.Logger) AccessGate {
	return &accessGate{
		identity: identity,
		logger:   logger,
	}
}

func (g *accessGate) ResolveCaller(ctx context.Context, token string) (*models.Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrUnauthenticated
	}

	identity, err := g.identity.ResolveToken(ctx, token)
	if err != nil {
		g.logger.DebugContext(ctx, "Session token rejected", "error", err)
		return nil, ErrUnauthenticated
	}
	if identity == nil || identity.ID == "" {
		return nil, ErrUnauthenticated
	}

	return identity, nil
}

// IsAdmin reads the caller's profile role. A missing profile is a plain member;
// any other failure, including an unknown role value, is returned as an error.
func (g *accessGate) IsAdmin(ctx context.Context, rc RequestContext) (bool, error) {
	role, err := g.callerRole(ctx, rc)
	if err != nil {
		return false, err
	}
	return role.IsAdmin(), nil
}

func (g *accessGate) RequireAdmin(ctx context.Context, rc RequestContext) (*models.Identity, error) {
	if !rc.Authenticated() {
		return nil, ErrUnauthenticated
	}

	isAdmin, err := g.IsAdmin(ctx, rc)
	if err != nil {
		g.logger.ErrorContext(ctx, "Admin check failed, denying", "user_id", rc.Caller.ID, "error", err)
		return nil, NewPermissionError(rc.Caller.ID, "admin_console", "access", "role check failed")
	}
	if !isAdmin {
		g.logger.WarnContext(ctx, "Admin access denied", "user_id", rc.Caller.ID, "email", rc.Caller.Email)
		return nil, NewPermissionError(rc.Caller.ID, "admin_console", "access", "caller is not an admin")
	}

	return rc.Caller, nil
}

func (g *accessGate) callerRole(ctx context.Context, rc RequestContext) (models.UserRole, error) {
	if !rc.Authenticated() {
		return models.RoleMember, nil
	}

	profile, err := rc.Repo.Profile().GetByID(ctx, nil, rc.Caller.ID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return models.RoleMember, nil
		}
		return "", fmt.Errorf("failed to load profile: %w", err)
	}

	if profile.Role == nil {
		return models.RoleMember, nil
	}
	return models.ParseRole(*profile.Role)
}
