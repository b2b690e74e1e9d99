package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/offerdesk/offer-platform/internal/models"
	"github.com/offerdesk/offer-platform/internal/services"
)

// AdminContextKey is the key holding the admin session in the gin context
const AdminContextKey = "admin_session"

// loginPath is where unauthenticated admin requests are sent
const loginPath = "/admin/login"

// SessionAuth gates admin routes behind a server-side session. The cookie
// carries only an opaque token; identity and expiry live in the store.
// Unauthenticated requests redirect to the login page rather than erroring.
func SessionAuth(authService *services.AuthService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(cookieName)
		if err != nil {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}

		token, err := uuid.Parse(cookie)
		if err != nil {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}

		session, err := authService.ValidateSession(c.Request.Context(), token)
		if err != nil {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}

		c.Set(AdminContextKey, session)
		c.Next()
	}
}

// GetAdminSession retrieves the authenticated admin session from the gin context
func GetAdminSession(c *gin.Context) (*models.AdminSession, bool) {
	value, exists := c.Get(AdminContextKey)
	if !exists {
		return nil, false
	}

	session, ok := value.(*models.AdminSession)
	return session, ok
}
