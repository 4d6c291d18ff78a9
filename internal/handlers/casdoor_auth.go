package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/seminar-portal/portal-service/internal/models"
	"github.com/seminar-portal/portal-service/internal/services"
)

const (
	sessionCookie = "access_token"
	callerKey     = "user"
	callerIDKey   = "user_id"

	adminLoginMessage = "Please sign in to access the admin area."
)

// SessionAuthMiddleware resolves the Casdoor session of the request through the
// access gate. It only establishes identity; admin checks stay in the services.
type SessionAuthMiddleware struct {
	gate     services.AccessGate
	loginURL string
}

func NewSessionAuthMiddleware(gate services.AccessGate, loginURL string) *SessionAuthMiddleware {
	if loginURL == "" {
		loginURL = "/login"
	}
	return &SessionAuthMiddleware{
		gate:     gate,
		loginURL: loginURL,
	}
}

// OptionalAuthMiddleware attaches the caller when a valid token is present and
// lets anonymous requests through untouched
func (m *SessionAuthMiddleware) OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}

		caller, err := m.gate.ResolveCaller(c.Request.Context(), token)
		if err == nil {
			c.Set(callerIDKey, caller.ID)
			c.Set(callerKey, caller)
		}

		c.Next()
	}
}

// RequireSessionMiddleware answers anonymous callers with 401
func (m *SessionAuthMiddleware) RequireSessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetCallerFromContext(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ActionResult{
				Success: false,
				Message: "Not signed in.",
			})
			return
		}
		c.Next()
	}
}

// AdminSessionMiddleware sends anonymous callers to the sign-in screen.
// Signed-in non-admins are not redirected; the services reject them with 403.
func (m *SessionAuthMiddleware) AdminSessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetCallerFromContext(c) == nil {
			c.Redirect(http.StatusSeeOther, m.loginRedirect(adminLoginMessage, c.Request.URL.Path))
			c.Abort()
			return
		}
		c.Next()
	}
}

func (m *SessionAuthMiddleware) loginRedirect(message, redirectedFrom string) string {
	u, err := url.Parse(m.loginURL)
	if err != nil {
		return m.loginURL
	}
	q := u.Query()
	q.Set("message", message)
	q.Set("redirectedFrom", redirectedFrom)
	u.RawQuery = q.Encode()
	return u.String()
}

func extractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}

	if cookie, err := c.Cookie(sessionCookie); err == nil {
		return cookie
	}
	return ""
}

// GetCallerFromContext returns the signed-in caller or nil
func GetCallerFromContext(c *gin.Context) *models.Identity {
	v, exists := c.Get(callerKey)
	if !exists {
		return nil
	}
	caller, ok := v.(*models.Identity)
	if !ok {
		return nil
	}
	return caller
}
