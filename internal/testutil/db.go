// Package testutil holds fixtures shared by the package tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/seminar-portal/portal-service/internal/models"
)

var dbCounter atomic.Int64

// NewTestDB opens a private in-memory SQLite database with the portal schema.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:portal_test_%d?mode=memory&cache=shared", dbCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(&models.Profile{}, &models.Topic{}, &models.Course{}, &models.TrainingRequest{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func strPtr(s string) *string { return &s }

// SeedProfile inserts a profile; an empty role leaves the column NULL.
func SeedProfile(t testing.TB, db *gorm.DB, id, role, fullName, department string) *models.Profile {
	t.Helper()
	p := &models.Profile{ID: id, FullName: strPtr(fullName), Department: strPtr(department)}
	if role != "" {
		p.Role = strPtr(role)
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("failed to seed profile %s: %v", id, err)
	}
	return p
}

func SeedTopic(t testing.TB, db *gorm.DB, id, slug, name string) *models.Topic {
	t.Helper()
	topic := &models.Topic{ID: id, Slug: slug, Name: name, CreatedAt: time.Now()}
	if err := db.Create(topic).Error; err != nil {
		t.Fatalf("failed to seed topic %s: %v", id, err)
	}
	return topic
}

func SeedCourse(t testing.TB, db *gorm.DB, id, topicID, title string, active bool) *models.Course {
	t.Helper()
	course := &models.Course{
		ID:              id,
		TopicID:         topicID,
		Title:           title,
		Content:         title + " content",
		ExperienceLevel: models.LevelBeginner,
		IsActive:        true,
		CreatedAt:       time.Now(),
	}
	if err := db.Create(course).Error; err != nil {
		t.Fatalf("failed to seed course %s: %v", id, err)
	}
	// the column default would turn a zero-value false back into true on insert
	if !active {
		if err := db.Model(course).Update("is_active", false).Error; err != nil {
			t.Fatalf("failed to deactivate course %s: %v", id, err)
		}
		course.IsActive = false
	}
	return course
}

func SeedRequest(t testing.TB, db *gorm.DB, id, userID, courseID string, status models.RequestStatus, createdAt time.Time) *models.TrainingRequest {
	t.Helper()
	req := &models.TrainingRequest{
		ID:        id,
		CreatedAt: createdAt,
		UserID:    userID,
		CourseID:  courseID,
		Status:    status,
	}
	if err := db.Create(req).Error; err != nil {
		t.Fatalf("failed to seed request %s: %v", id, err)
	}
	return req
}
