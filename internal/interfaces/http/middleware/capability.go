package middleware

import (
	"net/http"

	"github.com/adminhub/backend/internal/domain/identity"
	"github.com/adminhub/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// RequireCapability creates middleware that rejects requests whose token does
// not carry the given capability. Matching is exact; capabilities are opaque
// tags, never patterns.
func RequireCapability(capability identity.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				dto.ErrCodeUnauthorized, "Authentication required", GetRequestID(c)))
			return
		}

		if !claims.HasCapability(string(capability)) {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
				dto.ErrCodeForbidden, "Missing required capability: "+string(capability), GetRequestID(c)))
			return
		}

		c.Next()
	}
}
