package middleware

import (
	"context"

	"borntoday-backend/internal/shared/utils"

	"github.com/gin-gonic/gin"
)

type clientIPKey struct{}

const ContextKeyClientIP = "client_ip"

// ClientIPMiddleware resolves the client address behind proxies once per request
// and stores it in both the gin context and the request context.
func ClientIPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := utils.ExtractClientIP(c)
		c.Set(ContextKeyClientIP, clientIP)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), clientIPKey{}, clientIP))
		c.Next()
	}
}

// ClientIPFromContext returns "" when ClientIPMiddleware did not run.
func ClientIPFromContext(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey{}).(string)
	return ip
}
