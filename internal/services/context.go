package services

import (
	"github.com/seminar-portal/portal-service/internal/models"
	"github.com/seminar-portal/portal-service/internal/repositories"
)

// RequestContext is passed explicitly into every operation. Caller is nil for
// anonymous requests.
type RequestContext struct {
	Caller *models.Identity
	Repo   repositories.Repository
}

func (rc RequestContext) Authenticated() bool {
	return rc.Caller != nil && rc.Caller.ID != ""
}

func (rc RequestContext) callerID() string {
	if rc.Caller == nil {
		return ""
	}
	return rc.Caller.ID
}
