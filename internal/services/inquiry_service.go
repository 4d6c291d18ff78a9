package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/seminar-portal/portal-service/internal/events"
	"github.com/seminar-portal/portal-service/internal/models"
	"github.com/seminar-portal/portal-service/internal/repositories"
	"github.com/seminar-portal/portal-service/internal/validator"
)

type inquiryService struct {
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
	now       Clock
}

func NewInquiryService(publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator, now Clock) InquiryService {
	if now == nil {
		now = systemClock
	}
	return &inquiryService{
		publisher: publisher,
		logger:    logger,
		validator: validator,
		now:       now,
	}
}

// CreateRequest inserts a fresh pending request for the caller. Repeated calls
// for the same course create independent requests.
func (s *inquiryService) CreateRequest(ctx context.Context, rc RequestContext, courseID string) (*models.TrainingRequest, error) {
	if !rc.Authenticated() {
		return nil, ErrUnauthenticated
	}

	courseID = strings.TrimSpace(courseID)
	if courseID == "" {
		return nil, invalidInput(validator.ValidationErrors{{Field: "CourseID", Message: "is required", Rule: "required"}})
	}

	if _, err := rc.Repo.Catalog().GetCourseByID(ctx, nil, courseID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, invalidInput(ErrCourseNotFound)
		}
		return nil, fmt.Errorf("failed to check course: %w", err)
	}

	request := &models.TrainingRequest{
		ID:        uuid.New().String(),
		CreatedAt: s.now(),
		UserID:    rc.Caller.ID,
		CourseID:  courseID,
		Status:    models.RequestPending,
	}

	if err := rc.Repo.TrainingRequest().Create(ctx, nil, request); err != nil {
		return nil, fmt.Errorf("failed to save request: %w", err)
	}

	publishEvent(ctx, s.publisher, s.logger, events.TypeRequestCreated, events.RequestCreatedData{
		RequestID: request.ID,
		UserID:    request.UserID,
		CourseID:  request.CourseID,
	})

	s.logger.InfoContext(ctx, "Training request created", "request_id", request.ID, "user_id", request.UserID, "course_id", request.CourseID)
	return request, nil
}

// SubmitInquiry is the form entry point: it also requires the course title the
// page showed to the user.
func (s *inquiryService) SubmitInquiry(ctx context.Context, rc RequestContext, req *InquiryRequest) (*models.TrainingRequest, error) {
	if !rc.Authenticated() {
		return nil, ErrUnauthenticated
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, invalidInput(err)
	}
	return s.CreateRequest(ctx, rc, req.CourseID)
}
