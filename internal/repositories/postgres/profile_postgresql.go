package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/seminar-portal/portal-service/internal/models"
	"github.com/seminar-portal/portal-service/internal/repositories"
)

type ProfilePostgreSQL struct {
	db *gorm.DB
}

func NewProfilePostgreSQL(db *gorm.DB) repositories.ProfileRepository {
	return &ProfilePostgreSQL{db: db}
}

func (p *ProfilePostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Profile, error) {
	var profile models.Profile
	err := getDB(p.db, tx).WithContext(ctx).
		Where("id = ?", id).
		First(&profile).Error
	if err != nil {
		return nil, handleDBError(err, "get profile by id")
	}
	return &profile, nil
}

// GetByIDs fetches all listed profiles in one query; unknown ids are skipped
func (p *ProfilePostgreSQL) GetByIDs(ctx context.Context, tx *gorm.DB, ids []string) ([]*models.Profile, error) {
	ids = distinctNonEmpty(ids)
	if len(ids) == 0 {
		return []*models.Profile{}, nil
	}

	var profiles []*models.Profile
	err := getDB(p.db, tx).WithContext(ctx).
		Select("id, full_name, department").
		Where("id IN ?", ids).
		Find(&profiles).Error
	if err != nil {
		return nil, handleDBError(err, "get profiles by ids")
	}
	return profiles, nil
}
