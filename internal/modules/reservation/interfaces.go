package reservation

import (
	"context"

	"reservasalas/internal/domain"
)

// ReservationRepository defines the persistence operations the service needs.
type ReservationRepository interface {
	CreateBatch(ctx context.Context, rs []*domain.Reservation) error
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	CancelActive(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	ListByParticipant(ctx context.Context, ci string) ([]domain.Reservation, error)
	ListAll(ctx context.Context) ([]domain.Reservation, error)
}

// RoomRepository is the slice of the room directory this service consults.
type RoomRepository interface {
	GetByKey(ctx context.Context, building, name string) (*domain.Room, error)
}

// SanctionNotifier tells the external sanction service about cancellations.
// Fire-and-forget: failures are never surfaced to the caller.
type SanctionNotifier interface {
	NotifyCancellation(ctx context.Context, ci string, reservationID int64, reason string) error
}
