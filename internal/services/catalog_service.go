package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/seminar-portal/portal-service/internal/models"
	"github.com/seminar-portal/portal-service/internal/repositories"
)

type catalogService struct {
	logger *slog.Logger
}

func NewCatalogService(logger *slog.Logger) CatalogService {
	return &catalogService{logger: logger}
}

// ListTopics returns every topic to a signed-in caller
func (s *catalogService) ListTopics(ctx context.Context, rc RequestContext) ([]*models.Topic, error) {
	if !rc.Authenticated() {
		return nil, ErrUnauthenticated
	}

	topics, err := rc.Repo.Catalog().ListTopics(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}
	return topics, nil
}

// GetTopic returns the topic with its active courses
func (s *catalogService) GetTopic(ctx context.Context, rc RequestContext, slug string) (*models.TopicDetail, error) {
	if !rc.Authenticated() {
		return nil, ErrUnauthenticated
	}

	topic, err := rc.Repo.Catalog().GetTopicBySlug(ctx, nil, slug)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrTopicNotFound
		}
		return nil, fmt.Errorf("failed to get topic: %w", err)
	}

	courses, err := rc.Repo.Catalog().ListActiveCourses(ctx, nil, topic.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	return &models.TopicDetail{Topic: topic, Courses: courses}, nil
}
