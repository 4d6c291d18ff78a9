package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/seminar-portal/portal-service/internal/models"
	"github.com/seminar-portal/portal-service/internal/repositories"
)

type TrainingRequestPostgreSQL struct {
	db *gorm.DB
}

func NewTrainingRequestPostgreSQL(db *gorm.DB) repositories.TrainingRequestRepository {
	return &TrainingRequestPostgreSQL{db: db}
}

func (t *TrainingRequestPostgreSQL) Create(ctx context.Context, tx *gorm.DB, req *models.TrainingRequest) error {
	if err := getDB(t.db, tx).WithContext(ctx).Create(req).Error; err != nil {
		return handleDBError(err, "create training request")
	}
	return nil
}

func (t *TrainingRequestPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.TrainingRequest, error) {
	var req models.TrainingRequest
	if err := getDB(t.db, tx).WithContext(ctx).Where("id = ?", id).First(&req).Error; err != nil {
		return nil, handleDBError(err, "get training request by id")
	}
	return &req, nil
}

func (t *TrainingRequestPostgreSQL) ListAll(ctx context.Context, tx *gorm.DB) ([]*models.TrainingRequest, error) {
	var requests []*models.TrainingRequest
	err := getDB(t.db, tx).WithContext(ctx).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, handleDBError(err, "list training requests")
	}
	return requests, nil
}

// ListByUser never selects admin_notes or processed_at
func (t *TrainingRequestPostgreSQL) ListByUser(ctx context.Context, tx *gorm.DB, userID string) ([]*models.OwnRequestRow, error) {
	var rows []*models.OwnRequestRow
	err := getDB(t.db, tx).WithContext(ctx).
		Table("training_requests tr").
		Select("tr.id, tr.created_at, tr.status, tr.course_id, c.title AS course_title").
		Joins("LEFT JOIN courses c ON c.id = tr.course_id").
		Where("tr.user_id = ?", userID).
		Order("tr.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, handleDBError(err, "list training requests by user")
	}
	return rows, nil
}

func (t *TrainingRequestPostgreSQL) UpdateStatus(ctx context.Context, tx *gorm.DB, id string, status models.RequestStatus, processedAt time.Time) error {
	return t.updateOne(ctx, tx, id, "update training request status", map[string]interface{}{
		"status":       status,
		"processed_at": processedAt,
	})
}

func (t *TrainingRequestPostgreSQL) UpdateNotes(ctx context.Context, tx *gorm.DB, id string, notes string) error {
	return t.updateOne(ctx, tx, id, "update training request notes", map[string]interface{}{
		"admin_notes": notes,
	})
}

func (t *TrainingRequestPostgreSQL) updateOne(ctx context.Context, tx *gorm.DB, id, operation string, fields map[string]interface{}) error {
	result := getDB(t.db, tx).WithContext(ctx).
		Model(&models.TrainingRequest{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return handleDBError(result.Error, operation)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%s: %w", operation, repositories.ErrNotFound)
	}
	return nil
}
