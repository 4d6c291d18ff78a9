package repositories

import (
	"context"
	"time"

	"github.com/seminar-portal/portal-service/internal/models"
	"gorm.io/gorm"
)

// IdentityProvider resolves a session token into the authenticated principal.
// It returns ErrNotFound when the token carries no usable identity.
type IdentityProvider interface {
	ResolveToken(ctx context.Context, token string) (*models.Identity, error)
}

// ProfileRepository reads the profiles table. The portal never writes profiles.
type ProfileRepository interface {
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Profile, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []string) ([]*models.Profile, error)
}

// CatalogRepository reads topics and courses
type CatalogRepository interface {
	ListTopics(ctx context.Context, tx *gorm.DB) ([]*models.Topic, error)
	GetTopicBySlug(ctx context.Context, tx *gorm.DB, slug string) (*models.Topic, error)
	ListActiveCourses(ctx context.Context, tx *gorm.DB, topicID string) ([]*models.Course, error)
	GetCourseByID(ctx context.Context, tx *gorm.DB, id string) (*models.Course, error)
	GetCoursesByIDs(ctx context.Context, tx *gorm.DB, ids []string) ([]*models.Course, error)
}

// TrainingRequestRepository persists training requests
type TrainingRequestRepository interface {
	Create(ctx context.Context, tx *gorm.DB, req *models.TrainingRequest) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.TrainingRequest, error)

	// ListAll returns every request, newest first
	ListAll(ctx context.Context, tx *gorm.DB) ([]*models.TrainingRequest, error)

	// ListByUser returns the caller-safe projection of one user's requests, newest first
	ListByUser(ctx context.Context, tx *gorm.DB, userID string) ([]*models.OwnRequestRow, error)

	// Single-row updates by primary key. Both return ErrNotFound when no row matched.
	UpdateStatus(ctx context.Context, tx *gorm.DB, id string, status models.RequestStatus, processedAt time.Time) error
	UpdateNotes(ctx context.Context, tx *gorm.DB, id string, notes string) error
}
