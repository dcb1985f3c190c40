package incident

import (
	"context"

	"reservasalas/internal/domain"
)

type IncidentRepository interface {
	CreateWithAlerts(ctx context.Context, inc *domain.Incident, recipients []string, message string) ([]domain.Alert, error)
	GetByID(ctx context.Context, id int64) (*domain.Incident, error)
	UpdateStatus(ctx context.Context, id int64, status domain.IncidentStatus) error
	DeleteCascade(ctx context.Context, id int64) (bool, error)
	ListByReporter(ctx context.Context, ci string) ([]domain.Incident, error)
	ListByRoom(ctx context.Context, building, roomName string) ([]domain.Incident, error)
}

type AlertRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Alert, error)
	ListByRecipient(ctx context.Context, ci string) ([]domain.Alert, error)
	MarkRead(ctx context.Context, id int64) error
	CountUnread(ctx context.Context, ci string) (int64, error)
}

// ReservationReader resolves the reservation an incident refers to.
type ReservationReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
}

// AlertPusher delivers freshly created alerts to connected recipients.
// Best-effort: delivery failures never affect the report operation.
type AlertPusher interface {
	Push(alert domain.Alert)
}
