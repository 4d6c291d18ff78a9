package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/seminar-portal/portal-service/internal/services"
	"github.com/seminar-portal/portal-service/internal/utils"
)

type HandlerManager struct {
	catalogHandler *CatalogHandler
	inquiryHandler *InquiryHandler
	selfHandler    *SelfHandler
	adminHandler   *AdminHandler
	authMiddleware *SessionAuthMiddleware
	services       services.ServiceManager
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger, loginURL string) *HandlerManager {
	return &HandlerManager{
		catalogHandler: NewCatalogHandler(serviceManager, logger),
		inquiryHandler: NewInquiryHandler(serviceManager, logger),
		selfHandler:    NewSelfHandler(serviceManager, logger),
		adminHandler:   NewAdminHandler(serviceManager, logger),
		authMiddleware: NewSessionAuthMiddleware(serviceManager.AccessGate(), loginURL),
		services:       serviceManager,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")
	v1.Use(hm.authMiddleware.OptionalAuthMiddleware())
	{
		// Inquiry intake answers anonymous callers itself
		v1.POST("/inquiries", hm.inquiryHandler.SubmitInquiry)

		// Signed-in users
		self := v1.Group("")
		self.Use(hm.authMiddleware.RequireSessionMiddleware())
		{
			self.GET("/topics", hm.catalogHandler.ListTopics)
			self.GET("/topics/:slug", hm.catalogHandler.GetTopic)
			self.GET("/me", hm.selfHandler.GetMe)
			self.GET("/my-requests", hm.selfHandler.ListMyRequests)
		}

		// Admin console - admin role is checked by the access gate in every service call
		admin := v1.Group("/admin")
		admin.Use(hm.authMiddleware.AdminSessionMiddleware())
		{
			admin.GET("/requests", hm.adminHandler.ListRequests)
			admin.GET("/requests/export", hm.adminHandler.ExportRequests)
			admin.POST("/requests/:id/status", hm.adminHandler.UpdateStatus)
			admin.POST("/requests/:id/note", hm.adminHandler.UpdateNote)
		}
	}

	router.GET("/health", hm.health)
}

func (hm *HandlerManager) health(c *gin.Context) {
	if err := hm.services.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"service": "seminar-portal",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "seminar-portal",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
