package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/seminar-portal/portal-service/internal/models"
	"github.com/seminar-portal/portal-service/internal/repositories"
)

type selfService struct {
	logger *slog.Logger
}

func NewSelfService(logger *slog.Logger) SelfService {
	return &selfService{logger: logger}
}

func (s *selfService) ListOwnRequests(ctx context.Context, rc RequestContext) ([]*models.OwnRequestRow, error) {
	if !rc.Authenticated() {
		return nil, ErrUnauthenticated
	}

	rows, err := rc.Repo.TrainingRequest().ListByUser(ctx, nil, rc.Caller.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list own requests: %w", err)
	}
	return rows, nil
}

func (s *selfService) GetCallerProfile(ctx context.Context, rc RequestContext) (*models.CallerProfile, error) {
	if !rc.Authenticated() {
		return nil, ErrUnauthenticated
	}

	out := &models.CallerProfile{
		ID:    rc.Caller.ID,
		Email: rc.Caller.Email,
		Role:  models.RoleMember,
	}

	profile, err := rc.Repo.Profile().GetByID(ctx, nil, rc.Caller.ID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return out, nil
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	out.FullName = profile.FullName
	out.Department = profile.Department
	if profile.Role != nil {
		role, err := models.ParseRole(*profile.Role)
		if err != nil {
			// shown as a member; the gate still refuses admin operations
			s.logger.WarnContext(ctx, "Profile has unknown role", "user_id", rc.Caller.ID, "error", err)
		} else {
			out.Role = role
		}
	}

	return out, nil
}
