// Package middleware provides the gin middleware chain for the HTTP layer.
package middleware

import (
	"net/http"
	"strings"

	"github.com/bizops/reporting/internal/infrastructure/auth"
	"github.com/bizops/reporting/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

const claimsContextKey = "jwt_claims"

// JWTConfig controls token authentication.
type JWTConfig struct {
	Verifier  *auth.Verifier
	SkipPaths []string
}

// JWT authenticates requests with a Bearer token and stores the verified
// claims in the gin context. Paths in SkipPaths pass through unauthenticated.
func JWT(cfg JWTConfig) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "Missing authorization header")
			return
		}
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		claims, err := cfg.Verifier.Verify(token)
		if err != nil {
			abortUnauthorized(c, err.Error())
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse(dto.ErrCodeUnauthorized, message, nil, GetRequestID(c)))
}

// GetClaims returns the verified claims stored by the JWT middleware.
func GetClaims(c *gin.Context) (*auth.Claims, bool) {
	value, exists := c.Get(claimsContextKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}
