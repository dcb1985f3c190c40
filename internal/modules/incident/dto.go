package incident

import "reservasalas/internal/domain"

// ReportIncidentRequest opens an incident against an existing reservation.
// The reporter comes from the identity token.
type ReportIncidentRequest struct {
	ReservationID int64  `json:"reservation_id" binding:"required"`
	Type          string `json:"type" binding:"required"`
	Severity      string `json:"severity" binding:"required"`
	Description   string `json:"description" binding:"required"`
}

type ChangeStatusRequest struct {
	NewStatus string `json:"new_status" binding:"required"`
}

// ReportResult is what the caller observes: the incident plus the alerts the
// fan-out created.
type ReportResult struct {
	Incident domain.Incident `json:"incident"`
	Alerts   []domain.Alert  `json:"alerts"`
}
