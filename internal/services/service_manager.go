package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/seminar-portal/portal-service/internal/events"
	"github.com/seminar-portal/portal-service/internal/models"
	"github.com/seminar-portal/portal-service/internal/repositories"
	"github.com/seminar-portal/portal-service/internal/validator"
)

// serviceManager implements ServiceManager interface
type serviceManager struct {
	// Dependencies
	repo      repositories.Repository
	identity  repositories.IdentityProvider
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
	clock     Clock

	// Service instances
	accessGate       AccessGate
	lifecycleService LifecycleService
	adminService     AdminService
	inquiryService   InquiryService
	selfService      SelfService
	catalogService   CatalogService

	// Lifecycle management
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a new service manager with all dependencies
func NewServiceManager(
	repo repositories.Repository,
	identity repositories.IdentityProvider,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *validator.Validator,
) ServiceManager {
	return &serviceManager{
		repo:      repo,
		identity:  identity,
		publisher: publisher,
		logger:    logger,
		validator: validator,
		clock:     systemClock,
	}
}

// Initialize sets up all services and their dependencies
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if sm.repo == nil || sm.identity == nil {
		return fmt.Errorf("service manager requires a repository and an identity provider")
	}

	sm.logger.Info("Initializing service manager")

	sm.accessGate = NewAccessGate(sm.identity, sm.logger)
	sm.lifecycleService = NewLifecycleService(sm.accessGate, sm.publisher, sm.logger, sm.validator, sm.clock)
	sm.adminService = NewAdminService(sm.accessGate, sm.logger)
	sm.inquiryService = NewInquiryService(sm.publisher, sm.logger, sm.validator, sm.clock)
	sm.selfService = NewSelfService(sm.logger)
	sm.catalogService = NewCatalogService(sm.logger)

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully")

	return nil
}

func (sm *serviceManager) mustBeReady() {
	if !sm.initialized {
		panic("service manager not initialized")
	}
}

// Service getters
func (sm *serviceManager) AccessGate() AccessGate {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeReady()
	return sm.accessGate
}

func (sm *serviceManager) Lifecycle() LifecycleService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeReady()
	return sm.lifecycleService
}

func (sm *serviceManager) Admin() AdminService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeReady()
	return sm.adminService
}

func (sm *serviceManager) Inquiry() InquiryService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeReady()
	return sm.inquiryService
}

func (sm *serviceManager) Self() SelfService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeReady()
	return sm.selfService
}

func (sm *serviceManager) Catalog() CatalogService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeReady()
	return sm.catalogService
}

func (sm *serviceManager) NewRequestContext(caller *models.Identity) RequestContext {
	return RequestContext{Caller: caller, Repo: sm.repo}
}

// HealthCheck pings the store and cache
func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}
	if err := sm.repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}
	return nil
}

// Shutdown closes the event publisher. The repository is closed by its manager.
func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}
	sm.logger.Info("Shutting down service manager")

	if sm.publisher != nil {
		if err := sm.publisher.Close(); err != nil {
			return fmt.Errorf("failed to close event publisher: %w", err)
		}
	}

	sm.shutdown = true
	return nil
}
