package middleware

import (
	"borntoday-backend/internal/shared/response"
	"borntoday-backend/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// AdminMiddleware runs after AuthMiddleware and requires the admin role.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get(ContextKeyRole)
		if !ok || role != jwt.RoleAdmin {
			response.Forbidden(c, "admin role required")
			c.Abort()
			return
		}
		c.Next()
	}
}
