package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"reservasalas/internal/domain"
	jwtsvc "reservasalas/internal/pkg/jwt"
	"reservasalas/internal/pkg/response"
)

const identityKey = "identity"

// Auth validates the bearer token issued by the session collaborator and puts
// the caller's identity into the request context. The core trusts the token's
// ci/is_admin claims without re-verifying credentials.
func Auth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or malformed Authorization header")
			c.Abort()
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Empty token")
			c.Abort()
			return
		}

		claims, err := jwt.ValidateToken(tokenStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token")
			c.Abort()
			return
		}

		c.Set(identityKey, domain.Identity{CI: claims.CI, IsAdmin: claims.IsAdmin})
		c.Next()
	}
}

// MustIdentity returns the identity stored by Auth. Routes registered behind
// the Auth middleware always have one.
func MustIdentity(c *gin.Context) domain.Identity {
	v, _ := c.Get(identityKey)
	id, _ := v.(domain.Identity)
	return id
}
