package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/seminar-portal/portal-service/internal/cache"
	"github.com/seminar-portal/portal-service/internal/models"
	"github.com/seminar-portal/portal-service/internal/repositories"
)

type CatalogPostgreSQL struct {
	db    *gorm.DB
	cache *cache.CacheHelper
}

func NewCatalogPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.CatalogRepository {
	return &CatalogPostgreSQL{
		db:    db,
		cache: cacheManager.Catalog,
	}
}

// cached bypasses the cache inside transactions so a tx never reads around itself
func (c *CatalogPostgreSQL) cached(ctx context.Context, tx *gorm.DB, key string, dest interface{}, fetch func() (interface{}, error)) error {
	if tx != nil || !c.cache.Enabled() {
		value, err := fetch()
		if err != nil {
			return err
		}
		return assign(dest, value)
	}
	return c.cache.CacheOrExecute(ctx, key, dest, cache.CatalogCacheConfig.TTL, fetch)
}

func (c *CatalogPostgreSQL) ListTopics(ctx context.Context, tx *gorm.DB) ([]*models.Topic, error) {
	var topics []*models.Topic
	err := c.cached(ctx, tx, "topics", &topics, func() (interface{}, error) {
		var rows []*models.Topic
		if err := getDB(c.db, tx).WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
			return nil, handleDBError(err, "list topics")
		}
		return rows, nil
	})
	if err != nil {
		return nil, err
	}
	return topics, nil
}

func (c *CatalogPostgreSQL) GetTopicBySlug(ctx context.Context, tx *gorm.DB, slug string) (*models.Topic, error) {
	var topic models.Topic
	err := c.cached(ctx, tx, "topic:slug:"+slug, &topic, func() (interface{}, error) {
		var row models.Topic
		if err := getDB(c.db, tx).WithContext(ctx).Where("slug = ?", slug).First(&row).Error; err != nil {
			return nil, handleDBError(err, "get topic by slug")
		}
		return &row, nil
	})
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

func (c *CatalogPostgreSQL) ListActiveCourses(ctx context.Context, tx *gorm.DB, topicID string) ([]*models.Course, error) {
	var courses []*models.Course
	err := c.cached(ctx, tx, "courses:topic:"+topicID, &courses, func() (interface{}, error) {
		var rows []*models.Course
		err := getDB(c.db, tx).WithContext(ctx).
			Where("topic_id = ? AND is_active = ?", topicID, true).
			Order("title ASC").
			Find(&rows).Error
		if err != nil {
			return nil, handleDBError(err, "list active courses")
		}
		return rows, nil
	})
	if err != nil {
		return nil, err
	}
	return courses, nil
}

func (c *CatalogPostgreSQL) GetCourseByID(ctx context.Context, tx *gorm.DB, id string) (*models.Course, error) {
	var course models.Course
	err := c.cached(ctx, tx, "course:id:"+id, &course, func() (interface{}, error) {
		var row models.Course
		if err := getDB(c.db, tx).WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
			return nil, handleDBError(err, "get course by id")
		}
		return &row, nil
	})
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// GetCoursesByIDs is a single batch lookup and always goes to the store
func (c *CatalogPostgreSQL) GetCoursesByIDs(ctx context.Context, tx *gorm.DB, ids []string) ([]*models.Course, error) {
	ids = distinctNonEmpty(ids)
	if len(ids) == 0 {
		return []*models.Course{}, nil
	}

	var courses []*models.Course
	err := getDB(c.db, tx).WithContext(ctx).
		Select("id, title").
		Where("id IN ?", ids).
		Find(&courses).Error
	if err != nil {
		return nil, handleDBError(err, "get courses by ids")
	}
	return courses, nil
}

func assign(dest, value interface{}) error {
	switch d := dest.(type) {
	case *[]*models.Topic:
		*d = value.([]*models.Topic)
	case *[]*models.Course:
		*d = value.([]*models.Course)
	case *models.Topic:
		*d = *value.(*models.Topic)
	case *models.Course:
		*d = *value.(*models.Course)
	default:
		return fmt.Errorf("unsupported catalog destination %T", dest)
	}
	return nil
}
