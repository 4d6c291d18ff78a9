package services

import (
	"context"

	"github.com/seminar-portal/portal-service/internal/models"
	"github.com/seminar-portal/portal-service/internal/validator"
)

// ===== REQUEST DTOs =====

type StatusChangeRequest = validator.StatusChangeRequest
type NoteRequest = validator.NoteRequest
type InquiryRequest = validator.InquiryRequest

// ===== SERVICES =====

// AccessGate is the single authority on who may call privileged operations.
// It never writes.
type AccessGate interface {
	// ResolveCaller turns a session token into an identity or ErrUnauthenticated
	ResolveCaller(ctx context.Context, token string) (*models.Identity, error)
	IsAdmin(ctx context.Context, rc RequestContext) (bool, error)

	// RequireAdmin returns the caller when they are an admin. Anything else,
	// including a failed role lookup, is a denial.
	RequireAdmin(ctx context.Context, rc RequestContext) (*models.Identity, error)
}

// LifecycleService applies admin transitions to training requests
type LifecycleService interface {
	SetStatus(ctx context.Context, rc RequestContext, req *StatusChangeRequest) (*models.TrainingRequest, error)
	SetNote(ctx context.Context, rc RequestContext, req *NoteRequest) (*models.TrainingRequest, error)
}

type AdminService interface {
	ListAllRequests(ctx context.Context, rc RequestContext) ([]*models.AdminRequestRow, error)
	ExportAllRequests(ctx context.Context, rc RequestContext) ([]byte, error)
}

type InquiryService interface {
	CreateRequest(ctx context.Context, rc RequestContext, courseID string) (*models.TrainingRequest, error)
	SubmitInquiry(ctx context.Context, rc RequestContext, req *InquiryRequest) (*models.TrainingRequest, error)
}

// SelfService covers what a signed-in user can see about themselves
type SelfService interface {
	ListOwnRequests(ctx context.Context, rc RequestContext) ([]*models.OwnRequestRow, error)
	GetCallerProfile(ctx context.Context, rc RequestContext) (*models.CallerProfile, error)
}

type CatalogService interface {
	ListTopics(ctx context.Context, rc RequestContext) ([]*models.Topic, error)
	GetTopic(ctx context.Context, rc RequestContext, slug string) (*models.TopicDetail, error)
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	AccessGate() AccessGate
	Lifecycle() LifecycleService
	Admin() AdminService
	Inquiry() InquiryService
	Self() SelfService
	Catalog() CatalogService

	// NewRequestContext binds a caller to the manager's repository
	NewRequestContext(caller *models.Identity) RequestContext

	// Health and lifecycle
	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
