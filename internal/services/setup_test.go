package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/seminar-portal/portal-service/internal/events"
	"github.com/seminar-portal/portal-service/internal/models"
	"github.com/seminar-portal/portal-service/internal/repositories"
	"github.com/seminar-portal/portal-service/internal/repositories/postgres"
	"github.com/seminar-portal/portal-service/internal/testutil"
	"github.com/seminar-portal/portal-service/internal/validator"
)

var fixedNow = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeIdentity maps tokens to identities
type fakeIdentity map[string]*models.Identity

func (f fakeIdentity) ResolveToken(ctx context.Context, token string) (*models.Identity, error) {
	if id, ok := f[token]; ok {
		return id, nil
	}
	return nil, errors.New("token signature invalid")
}

// brokenProfiles fails every lookup with a store error
type brokenProfiles struct{}

func (brokenProfiles) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Profile, error) {
	return nil, errors.New("connection reset by peer")
}

func (brokenProfiles) GetByIDs(ctx context.Context, tx *gorm.DB, ids []string) ([]*models.Profile, error) {
	return nil, errors.New("connection reset by peer")
}

// repoWithProfiles swaps the profile store of an otherwise real repository
type repoWithProfiles struct {
	repositories.Repository
	profiles repositories.ProfileRepository
}

func (r repoWithProfiles) Profile() repositories.ProfileRepository { return r.profiles }

type fixture struct {
	db        *gorm.DB
	repo      repositories.Repository
	gate      AccessGate
	lifecycle LifecycleService
	admin     AdminService
	inquiry   InquiryService
	self      SelfService
	catalog   CatalogService
	events    *events.MockEventPublisher
}

var (
	adminUser  = &models.Identity{ID: "admin-1", Email: "admin@example.com"}
	memberUser = &models.Identity{ID: "user-1", Email: "user@example.com"}
	otherUser  = &models.Identity{ID: "user-2", Email: "other@example.com"}
)

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewTestDB(t)
	logger := discardLogger()
	v := validator.New()
	publisher := events.NewMockEventPublisher(logger)
	gate := NewAccessGate(fakeIdentity{"admin-token": adminUser, "user-token": memberUser}, logger)

	testutil.SeedProfile(t, db, adminUser.ID, "admin", "Ada Admin", "IT")
	testutil.SeedProfile(t, db, memberUser.ID, "", "Max Member", "Sales")
	testutil.SeedProfile(t, db, otherUser.ID, "member", "Olga Other", "HR")
	testutil.SeedTopic(t, db, "topic-go", "go", "Go")
	testutil.SeedCourse(t, db, "course-123", "topic-go", "Go Basics", true)
	testutil.SeedCourse(t, db, "course-456", "topic-go", "Advanced Go", true)

	return &fixture{
		db:        db,
		repo:      postgres.NewPostgreSQLRepository(postgres.RepositoryConfig{DB: db}),
		gate:      gate,
		lifecycle: NewLifecycleService(gate, publisher, logger, v, fixedClock),
		admin:     NewAdminService(gate, logger),
		inquiry:   NewInquiryService(publisher, logger, v, fixedClock),
		self:      NewSelfService(logger),
		catalog:   NewCatalogService(logger),
		events:    publisher,
	}
}

func (f *fixture) as(caller *models.Identity) RequestContext {
	return RequestContext{Caller: caller, Repo: f.repo}
}

func (f *fixture) load(t *testing.T, id string) *models.TrainingRequest {
	t.Helper()
	var r models.TrainingRequest
	if err := f.db.First(&r, "id = ?", id).Error; err != nil {
		t.Fatalf("failed to load request %s: %v", id, err)
	}
	return &r
}

func strPtr(s string) *string { return &s }
