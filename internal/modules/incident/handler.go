package incident

import (
	"net/http"
	"strconv"

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
	rg.POST("/incidents", h.Report)
	rg.GET("/incidents/mine", h.ListMine)
	rg.PATCH("/incidents/:id/resolve", h.Resolve)

	rg.GET("/incidents/room", middleware.AdminOnly(), h.ListByRoom)
	rg.PATCH("/incidents/:id/status", middleware.AdminOnly(), h.ChangeStatus)
	rg.DELETE("/incidents/:id", middleware.AdminOnly(), h.Delete)

	rg.GET("/alerts/mine", h.ListMyAlerts)
	rg.PATCH("/alerts/:id/read", h.MarkAlertRead)
}

func (h *Handler) Report(c *gin.Context) {
	var req ReportIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if details := validator.Details(err); details != nil {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", details)
			return
		}
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.Report(c.Request.Context(), middleware.MustIdentity(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

func (h *Handler) Resolve(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid incident ID")
		return
	}

	inc, err := h.service.Resolve(c.Request.Context(), middleware.MustIdentity(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, inc)
}

func (h *Handler) ChangeStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid incident ID")
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if details := validator.Details(err); details != nil {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", details)
			return
		}
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	inc, err := h.service.AdminChangeStatus(c.Request.Context(), middleware.MustIdentity(c), id, domain.IncidentStatus(req.NewStatus))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, inc)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid incident ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.MustIdentity(c), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) ListMine(c *gin.Context) {
	list, err := h.service.ListMine(c.Request.Context(), middleware.MustIdentity(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) ListByRoom(c *gin.Context) {
	building := c.Query("building")
	roomName := c.Query("room_name")
	if building == "" || roomName == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "building and room_name are required")
		return
	}

	list, err := h.service.ListByRoom(c.Request.Context(), middleware.MustIdentity(c), building, roomName)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) ListMyAlerts(c *gin.Context) {
	list, unread, err := h.service.ListMyAlerts(c.Request.Context(), middleware.MustIdentity(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"alerts": list,
		"unread": unread,
	})
}

func (h *Handler) MarkAlertRead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid alert ID")
		return
	}

	a, err := h.service.MarkAlertRead(c.Request.Context(), middleware.MustIdentity(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid incident data")
	case ErrReservationNotFound:
		response.Error(c, http.StatusNotFound, "RESERVATION_NOT_FOUND", "Referenced reservation does not exist")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Incident not found")
	case ErrAlertNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Alert not found")
	case ErrIncidentClosed:
		response.Error(c, http.StatusConflict, "INCIDENT_CLOSED", "Incident is already resolved or cancelled")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Insufficient permissions")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error")
	}
}
