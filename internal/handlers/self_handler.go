package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/seminar-portal/portal-service/internal/services"
	"github.com/seminar-portal/portal-service/internal/utils"
)

// SelfHandler serves the signed-in caller's own data
type SelfHandler struct {
	BaseHandler
}

func NewSelfHandler(sm services.ServiceManager, logger utils.Logger) *SelfHandler {
	return &SelfHandler{BaseHandler: NewBaseHandler(sm, logger)}
}

// GetMe returns the caller's identity, profile and decoded role
// @Summary Current caller
// @Tags self
// @Produce json
// @Success 200 {object} models.CallerProfile
// @Failure 401 {object} ErrorResponse
// @Router /me [get]
func (h *SelfHandler) GetMe(c *gin.Context) {
	profile, err := h.services.Self().GetCallerProfile(c.Request.Context(), h.requestContext(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// ListMyRequests lists the caller's own training requests, newest first
// @Summary My requests
// @Tags self
// @Produce json
// @Success 200 {array} models.OwnRequestRow
// @Failure 401 {object} ErrorResponse
// @Router /my-requests [get]
func (h *SelfHandler) ListMyRequests(c *gin.Context) {
	rows, err := h.services.Self().ListOwnRequests(c.Request.Context(), h.requestContext(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}
