package middleware

import (
	"strings"

	"borntoday-backend/internal/shared/response"
	"borntoday-backend/pkg/jwt"
	"borntoday-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Context keys set by AuthMiddleware.
const (
	ContextKeySubject = "subject"
	ContextKeyRole    = "role"
)

// AuthMiddleware requires a valid "Bearer <token>" access token.
func AuthMiddleware(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := manager.ValidateAccessToken(token)
		if err != nil {
			logger.Debug("rejected access token", map[string]interface{}{
				"error": err.Error(),
				"path":  c.Request.URL.Path,
			})
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		c.Set(ContextKeySubject, claims.Subject)
		c.Set(ContextKeyRole, claims.Role)
		c.Next()
	}
}
