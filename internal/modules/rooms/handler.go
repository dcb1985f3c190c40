package rooms

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"reservasalas/internal/domain"
	"reservasalas/internal/middleware"
	"reservasalas/internal/pkg/response"
	"reservasalas/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/rooms", h.List)
	rg.GET("/rooms/:building/:name/status", h.Status)

	rg.POST("/rooms", middleware.AdminOnly(), h.Create)
	rg.PATCH("/rooms/:building/:name", middleware.AdminOnly(), h.Update)
	rg.PATCH("/rooms/:building/:name/status", middleware.AdminOnly(), h.SetStatus)
}

func (h *Handler) List(c *gin.Context) {
	views, err := h.service.List(c.Request.Context(), time.Now())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, views)
}

func (h *Handler) Status(c *gin.Context) {
	st, err := h.service.EffectiveStatus(c.Request.Context(), c.Param("building"), c.Param("name"), time.Now())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"building": c.Param("building"),
		"name":     c.Param("name"),
		"status":   st,
	})
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if details := validator.Details(err); details != nil {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", details)
			return
		}
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	room, err := h.service.CreateRoom(c.Request.Context(), middleware.MustIdentity(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, room)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if details := validator.Details(err); details != nil {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", details)
			return
		}
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	room, err := h.service.UpdateRoom(c.Request.Context(), middleware.MustIdentity(c), c.Param("building"), c.Param("name"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, room)
}

func (h *Handler) SetStatus(c *gin.Context) {
	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	var value *domain.RoomStatus
	if req.ManualStatus != nil {
		v := domain.RoomStatus(*req.ManualStatus)
		value = &v
	}

	err := h.service.SetManualOverride(c.Request.Context(), middleware.MustIdentity(c), c.Param("building"), c.Param("name"), value)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"manual_status": req.ManualStatus})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid room data")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Room not found")
	case ErrAlreadyExists:
		response.Error(c, http.StatusConflict, "ALREADY_EXISTS", "Room already exists")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Insufficient permissions")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error")
	}
}
