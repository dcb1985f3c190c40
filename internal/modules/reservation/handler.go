package reservation

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

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
	rg.POST("/reservations", h.Create)
	rg.GET("/reservations/mine", h.ListMine)
	rg.PATCH("/reservations/:id/cancel", h.Cancel)

	rg.GET("/reservations", middleware.AdminOnly(), h.ListAll)
	rg.DELETE("/reservations/:id", middleware.AdminOnly(), h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if details := validator.Details(err); details != nil {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", details)
			return
		}
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	rs, err := h.service.Create(c.Request.Context(), middleware.MustIdentity(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, rs)
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reservation ID")
		return
	}

	r, err := h.service.Cancel(c.Request.Context(), middleware.MustIdentity(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, r)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reservation ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.MustIdentity(c), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) ListMine(c *gin.Context) {
	rs, err := h.service.ListMine(c.Request.Context(), middleware.MustIdentity(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rs)
}

func (h *Handler) ListAll(c *gin.Context) {
	rs, err := h.service.ListAll(c.Request.Context(), middleware.MustIdentity(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rs)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reservation request")
	case ErrRoomNotFound:
		response.Error(c, http.StatusNotFound, "ROOM_NOT_FOUND", "Room does not exist")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Reservation not found")
	case ErrSlotTaken:
		response.Error(c, http.StatusConflict, "SLOT_TAKEN", "Slot is already booked for that room and date")
	case ErrAlreadyCancelled:
		response.Error(c, http.StatusConflict, "ALREADY_CANCELLED", "Reservation is already cancelled")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Insufficient permissions")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error")
	}
}
