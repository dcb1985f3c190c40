package rooms

import (
	"context"

	"reservasalas/internal/domain"
)

type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) error
	GetByKey(ctx context.Context, building, name string) (*domain.Room, error)
	List(ctx context.Context) ([]domain.Room, error)
	Update(ctx context.Context, room *domain.Room) error
	SetManualStatus(ctx context.Context, building, name string, value *domain.RoomStatus) error
}

// ReservationCounter is the slice of the reservation store the status engine
// reads. Snapshot reads only; no locking.
type ReservationCounter interface {
	CountActiveAt(ctx context.Context, building, roomName, date string, slotID int) (int64, error)
}
