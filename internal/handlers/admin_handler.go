package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/seminar-portal/portal-service/internal/models"
	"github.com/seminar-portal/portal-service/internal/services"
	"github.com/seminar-portal/portal-service/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AdminHandler struct {
	BaseHandler
}

func NewAdminHandler(sm services.ServiceManager, logger utils.Logger) *AdminHandler {
	return &AdminHandler{BaseHandler: NewBaseHandler(sm, logger)}
}

// ListRequests lists every training request with owner and course details
// @Summary List all requests
// @Tags admin
// @Produce json
// @Success 200 {array} models.AdminRequestRow
// @Failure 303 "Redirect to sign-in"
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/requests [get]
func (h *AdminHandler) ListRequests(c *gin.Context) {
	h.LogRequest(c, "Listing all training requests")

	rows, err := h.services.Admin().ListAllRequests(c.Request.Context(), h.requestContext(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

// ExportRequests downloads the request list as a spreadsheet
// @Summary Export requests
// @Tags admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 403 {object} ErrorResponse
// @Router /admin/requests/export [get]
func (h *AdminHandler) ExportRequests(c *gin.Context) {
	h.LogRequest(c, "Exporting training requests")

	data, err := h.services.Admin().ExportAllRequests(c.Request.Context(), h.requestContext(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("training-requests-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// UpdateStatus moves a request to a new status
// @Summary Change request status
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param body body services.StatusChangeRequest true "New status"
// @Success 200 {object} models.ActionResult
// @Failure 400 {object} models.ActionResult
// @Failure 403 {object} models.ActionResult
// @Failure 404 {object} models.ActionResult
// @Router /admin/requests/{id}/status [post]
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	rc, ok := h.authorize(c)
	if !ok {
		return
	}

	var req services.StatusChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ActionResult{
			Success: false,
			Message: "Invalid request payload",
			Data:    err.Error(),
		})
		return
	}
	req.RequestID = c.Param("id")

	h.LogRequest(c, "Changing request status", "request_id", req.RequestID, "status", req.Status)

	updated, err := h.services.Lifecycle().SetStatus(c.Request.Context(), rc, &req)
	h.respondAction(c, err, http.StatusOK, fmt.Sprintf("Request status set to %s.", req.Status), updated)
}

// UpdateNote sets or clears the admin note of a request
// @Summary Save admin note
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param body body services.NoteRequest true "Note text, empty clears it"
// @Success 200 {object} models.ActionResult
// @Failure 403 {object} models.ActionResult
// @Failure 404 {object} models.ActionResult
// @Router /admin/requests/{id}/note [post]
func (h *AdminHandler) UpdateNote(c *gin.Context) {
	rc, ok := h.authorize(c)
	if !ok {
		return
	}

	var req services.NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ActionResult{
			Success: false,
			Message: "Invalid request payload",
			Data:    err.Error(),
		})
		return
	}
	req.RequestID = c.Param("id")

	h.LogRequest(c, "Saving admin note", "request_id", req.RequestID)

	updated, err := h.services.Lifecycle().SetNote(c.Request.Context(), rc, &req)
	h.respondAction(c, err, http.StatusOK, "Note saved.", updated)
}

// authorize runs the admin gate before the body is read so a denied caller
// never sees payload errors
func (h *AdminHandler) authorize(c *gin.Context) (services.RequestContext, bool) {
	rc := h.requestContext(c)
	if _, err := h.services.AccessGate().RequireAdmin(c.Request.Context(), rc); err != nil {
		h.respondAction(c, err, http.StatusOK, "", nil)
		return rc, false
	}
	return rc, true
}
