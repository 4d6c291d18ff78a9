package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/seminar-portal/portal-service/internal/services"
	"github.com/seminar-portal/portal-service/internal/utils"
)

type CatalogHandler struct {
	BaseHandler
}

func NewCatalogHandler(sm services.ServiceManager, logger utils.Logger) *CatalogHandler {
	return &CatalogHandler{BaseHandler: NewBaseHandler(sm, logger)}
}

// ListTopics lists all training topics
// @Summary List topics
// @Tags catalog
// @Produce json
// @Success 200 {array} models.Topic
// @Failure 401 {object} models.ActionResult
// @Failure 500 {object} ErrorResponse
// @Router /topics [get]
func (h *CatalogHandler) ListTopics(c *gin.Context) {
	topics, err := h.services.Catalog().ListTopics(c.Request.Context(), h.requestContext(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, topics)
}

// GetTopic returns a topic with its active courses
// @Summary Get topic
// @Tags catalog
// @Produce json
// @Param slug path string true "Topic slug"
// @Success 200 {object} models.TopicDetail
// @Failure 401 {object} models.ActionResult
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /topics/{slug} [get]
func (h *CatalogHandler) GetTopic(c *gin.Context) {
	slug := c.Param("slug")

	detail, err := h.services.Catalog().GetTopic(c.Request.Context(), h.requestContext(c), slug)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}
