package middleware

import (
	"net/http"

	"github.com/bizops/reporting/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// RequirePermission rejects requests whose claims lack the permission.
// Must run after the JWT middleware.
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			abortUnauthorized(c, "Authentication required")
			return
		}
		if !claims.HasPermission(permission) {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Insufficient permissions", nil, GetRequestID(c)))
			return
		}
		c.Next()
	}
}
