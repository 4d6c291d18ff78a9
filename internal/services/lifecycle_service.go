package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/seminar-portal/portal-service/internal/events"
	"github.com/seminar-portal/portal-service/internal/models"
	"github.com/seminar-portal/portal-service/internal/repositories"
	"github.com/seminar-portal/portal-service/internal/validator"
)

type lifecycleService struct {
	gate      AccessGate
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
	now       Clock
}

func NewLifecycleService(gate AccessGate, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator, now Clock) LifecycleService {
	if now == nil {
		now = systemClock
	}
	return &lifecycleService{
		gate:      gate,
		publisher: publisher,
		logger:    logger,
		validator: validator,
		now:       now,
	}
}

// SetStatus moves a request to any of the four statuses and stamps processed_at.
// Notes are left alone.
func (s *lifecycleService) SetStatus(ctx context.Context, rc RequestContext, req *StatusChangeRequest) (*models.TrainingRequest, error) {
	admin, err := s.gate.RequireAdmin(ctx, rc)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(req); err != nil {
		return nil, invalidInput(err)
	}
	status := models.RequestStatus(req.Status)

	s.logger.InfoContext(ctx, "Updating request status", "request_id", req.RequestID, "status", status, "admin_id", admin.ID)

	var updated *models.TrainingRequest
	err = rc.Repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		current, err := txRepo.TrainingRequest().GetByID(ctx, nil, req.RequestID)
		if err != nil {
			return err
		}
		if !current.Status.CanTransitionTo(status) {
			return invalidInput(fmt.Errorf("cannot move request from %s to %s", current.Status, status))
		}

		if err := txRepo.TrainingRequest().UpdateStatus(ctx, nil, req.RequestID, status, s.now()); err != nil {
			return err
		}

		updated, err = txRepo.TrainingRequest().GetByID(ctx, nil, req.RequestID)
		return err
	})
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to update request status: %w", err)
	}

	publishEvent(ctx, s.publisher, s.logger, events.TypeRequestStatusChanged, events.RequestStatusChangedData{
		RequestID:   updated.ID,
		Status:      string(updated.Status),
		AdminID:     admin.ID,
		ProcessedAt: *updated.ProcessedAt,
	})

	s.logger.InfoContext(ctx, "Request status updated", "request_id", updated.ID, "status", updated.Status)
	return updated, nil
}

// SetNote stores the note as given. An empty note is stored as an empty string.
func (s *lifecycleService) SetNote(ctx context.Context, rc RequestContext, req *NoteRequest) (*models.TrainingRequest, error) {
	admin, err := s.gate.RequireAdmin(ctx, rc)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(req); err != nil {
		return nil, invalidInput(err)
	}

	s.logger.InfoContext(ctx, "Saving admin note", "request_id", req.RequestID, "admin_id", admin.ID)

	if err := rc.Repo.TrainingRequest().UpdateNotes(ctx, nil, req.RequestID, req.Note); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to save admin note: %w", err)
	}

	updated, err := rc.Repo.TrainingRequest().GetByID(ctx, nil, req.RequestID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload request: %w", err)
	}

	publishEvent(ctx, s.publisher, s.logger, events.TypeRequestNoteUpdated, events.RequestNoteUpdatedData{
		RequestID: updated.ID,
		AdminID:   admin.ID,
		Cleared:   req.Note == "",
	})

	return updated, nil
}
