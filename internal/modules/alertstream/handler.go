package alertstream

import (
	"github.com/gin-gonic/gin"

	"reservasalas/internal/middleware"
)

type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/alerts/stream", h.Stream)
}

func (h *Handler) Stream(c *gin.Context) {
	id := middleware.MustIdentity(c)
	_ = h.hub.ServeWS(c.Writer, c.Request, id.CI)
}
