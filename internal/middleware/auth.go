package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	"portfolio_backend/internal/logger"
	"portfolio_backend/pkg/apperrors"
)

// AdminTokenMiddleware guards the admin API with a static bearer token. An
// empty configured token disables the admin API entirely.
func AdminTokenMiddleware(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			logger.CtxWarn(c.Request.Context(), "admin API called but no admin token is configured", "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.NewForbiddenError("Admin API is disabled"))
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			return
		}

		provided := strings.TrimPrefix(authHeader, "Bearer ")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
			logger.CtxWarn(c.Request.Context(), "invalid admin token", "ip", c.ClientIP())
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Invalid token"))
			return
		}
		c.Next()
	}
}
