package slots

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reservasalas/internal/pkg/response"
)

// RegisterRoutes exposes the read-only catalog.
func RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/slots", func(c *gin.Context) {
		response.Success(c, http.StatusOK, All())
	})
}
