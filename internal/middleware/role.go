package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reservasalas/internal/pkg/response"
)

// AdminOnly rejects callers whose identity token does not carry is_admin.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !MustIdentity(c).IsAdmin {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: administrator only")
			c.Abort()
			return
		}
		c.Next()
	}
}
