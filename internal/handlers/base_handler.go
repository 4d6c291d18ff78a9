package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/seminar-portal/portal-service/internal/models"
	"github.com/seminar-portal/portal-service/internal/services"
	"github.com/seminar-portal/portal-service/internal/utils"
	"github.com/seminar-portal/portal-service/internal/validator"
)

type ErrorResponse = models.ErrorResponse

// BaseHandler carries what every handler needs
type BaseHandler struct {
	logger   utils.Logger
	services services.ServiceManager
}

func NewBaseHandler(sm services.ServiceManager, logger utils.Logger) BaseHandler {
	return BaseHandler{
		logger:   logger,
		services: sm,
	}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	args = append(args, "method", c.Request.Method, "path", c.FullPath())
	if callerID := c.GetString(callerIDKey); callerID != "" {
		args = append(args, "user_id", callerID)
	}
	utils.GetLogger(c, h.logger).Info(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	args = append(args, "error", err.Error(), "path", c.FullPath())
	utils.GetLogger(c, h.logger).Error(msg, args...)
}

// requestContext binds the caller of this request to the store
func (h *BaseHandler) requestContext(c *gin.Context) services.RequestContext {
	return h.services.NewRequestContext(GetCallerFromContext(c))
}

// classifyError maps service errors onto a status code and a user-facing message
func classifyError(err error) (int, string, string) {
	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		return http.StatusUnauthorized, "unauthenticated", "Not signed in."
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden, "forbidden", "You are not allowed to perform this action."
	case errors.Is(err, services.ErrValidationFailed):
		if errors.Is(err, services.ErrCourseNotFound) {
			return http.StatusBadRequest, "validation_failed", "The requested course does not exist."
		}
		return http.StatusBadRequest, "validation_failed", "Invalid input."
	case errors.Is(err, services.ErrRequestNotFound):
		return http.StatusNotFound, "not_found", "Training request not found."
	case errors.Is(err, services.ErrTopicNotFound):
		return http.StatusNotFound, "not_found", "Topic not found."
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound, "not_found", "Not found."
	default:
		return http.StatusInternalServerError, "internal_error", "An error occurred."
	}
}

// handleServiceError answers read endpoints. Store failures carry the raw error
// text in details for operators.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	status, code, message := classifyError(err)

	resp := ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now().UTC(),
		Path:      c.Request.URL.Path,
	}

	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		resp.ValidationErrors = toValidationResponses(verrs)
	case status == http.StatusInternalServerError:
		h.LogError(c, err, "Request failed")
		resp.Details = err.Error()
	case status == http.StatusForbidden:
		var permErr *services.PermissionError
		if errors.As(err, &permErr) {
			resp.Details = map[string]interface{}{
				"resource": permErr.Resource,
				"action":   permErr.Action,
				"reason":   permErr.Reason,
			}
		}
	}

	c.JSON(status, resp)
}

// respondAction answers mutation endpoints with success plus a message
func (h *BaseHandler) respondAction(c *gin.Context, err error, successStatus int, successMessage string, data interface{}) {
	if err == nil {
		c.JSON(successStatus, models.ActionResult{
			Success: true,
			Message: successMessage,
			Data:    data,
		})
		return
	}

	status, _, message := classifyError(err)
	result := models.ActionResult{Success: false, Message: message}

	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		result.Data = toValidationResponses(verrs)
	case status == http.StatusInternalServerError:
		h.LogError(c, err, "Action failed")
		result.Message = message + " " + err.Error()
	}

	c.JSON(status, result)
}

func toValidationResponses(verrs validator.ValidationErrors) []models.ValidationErrorResponse {
	out := make([]models.ValidationErrorResponse, 0, len(verrs))
	for _, ve := range verrs {
		out = append(out, models.ValidationErrorResponse{
			Field:   ve.Field,
			Message: ve.Message,
			Rule:    ve.Rule,
		})
	}
	return out
}
