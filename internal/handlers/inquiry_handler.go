package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/seminar-portal/portal-service/internal/models"
	"github.com/seminar-portal/portal-service/internal/services"
	"github.com/seminar-portal/portal-service/internal/utils"
)

type InquiryHandler struct {
	BaseHandler
}

func NewInquiryHandler(sm services.ServiceManager, logger utils.Logger) *InquiryHandler {
	return &InquiryHandler{BaseHandler: NewBaseHandler(sm, logger)}
}

// SubmitInquiry creates a training request for the signed-in caller
// @Summary Request a course
// @Tags inquiries
// @Accept json
// @Produce json
// @Param inquiry body services.InquiryRequest true "Course to request"
// @Success 201 {object} models.ActionResult
// @Failure 400 {object} models.ActionResult
// @Failure 401 {object} models.ActionResult
// @Router /inquiries [post]
func (h *InquiryHandler) SubmitInquiry(c *gin.Context) {
	if GetCallerFromContext(c) == nil {
		h.respondAction(c, services.ErrUnauthenticated, 0, "", nil)
		return
	}

	var req services.InquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ActionResult{
			Success: false,
			Message: "Invalid request payload",
			Data:    err.Error(),
		})
		return
	}

	h.LogRequest(c, "Submitting course inquiry", "course_id", req.CourseID)

	created, err := h.services.Inquiry().SubmitInquiry(c.Request.Context(), h.requestContext(c), &req)
	h.respondAction(c, err, http.StatusCreated,
		fmt.Sprintf("Request for %q sent successfully!", req.CourseTitle),
		created)
}
