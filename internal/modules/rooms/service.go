package rooms

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"reservasalas/internal/domain"
	"reservasalas/internal/repository"
	"reservasalas/internal/slots"
)

type Service struct {
	rooms        RoomRepository
	reservations ReservationCounter
}

func NewService(rooms RoomRepository, reservations ReservationCounter) *Service {
	return &Service{
		rooms:        rooms,
		reservations: reservations,
	}
}

// ComputedStatus derives occupancy purely from committed reservations: the
// room is occupied iff an active reservation covers the slot containing now.
func (s *Service) ComputedStatus(ctx context.Context, building, name string, now time.Time) (domain.RoomStatus, error) {
	slot, ok := slots.At(now)
	if !ok {
		return domain.StatusAvailable, nil
	}

	cnt, err := s.reservations.CountActiveAt(ctx, building, name, now.Format(domain.DateLayout), slot.ID)
	if err != nil {
		return "", err
	}
	if cnt > 0 {
		return domain.StatusOccupied, nil
	}
	return domain.StatusAvailable, nil
}

// EffectiveStatus is the displayed status: the manual override when set, the
// computed status otherwise. The override is sticky; it stays until an
// administrator changes or clears it.
func (s *Service) EffectiveStatus(ctx context.Context, building, name string, now time.Time) (domain.RoomStatus, error) {
	room, err := s.rooms.GetByKey(ctx, building, name)
	if err != nil {
		if repository.IsNotFound(err) {
			return "", ErrNotFound
		}
		return "", err
	}

	if room.ManualStatus != nil {
		return *room.ManualStatus, nil
	}
	return s.ComputedStatus(ctx, building, name, now)
}

// SetManualOverride assigns the administrative override; nil clears it.
func (s *Service) SetManualOverride(ctx context.Context, actor domain.Identity, building, name string, value *domain.RoomStatus) error {
	if !actor.IsAdmin {
		return ErrForbidden
	}
	if value != nil && !value.ValidOverride() {
		return ErrValidation
	}

	if err := s.rooms.SetManualStatus(ctx, building, name, value); err != nil {
		if repository.IsNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Service) CreateRoom(ctx context.Context, actor domain.Identity, req CreateRoomRequest) (*domain.Room, error) {
	if !actor.IsAdmin {
		return nil, ErrForbidden
	}

	category := domain.RoomCategory(req.Category)
	if !category.Valid() {
		return nil, ErrValidation
	}

	room := &domain.Room{
		Name:     req.Name,
		Building: req.Building,
		Capacity: req.Capacity,
		Category: category,
	}

	if err := s.rooms.Create(ctx, room); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}
	return room, nil
}

func (s *Service) UpdateRoom(ctx context.Context, actor domain.Identity, building, name string, req UpdateRoomRequest) (*domain.Room, error) {
	if !actor.IsAdmin {
		return nil, ErrForbidden
	}

	category := domain.RoomCategory(req.Category)
	if !category.Valid() {
		return nil, ErrValidation
	}

	room := &domain.Room{
		Name:     name,
		Building: building,
		Capacity: req.Capacity,
		Category: category,
	}

	if err := s.rooms.Update(ctx, room); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.rooms.GetByKey(ctx, building, name)
}

// List returns every room with its effective status at now.
func (s *Service) List(ctx context.Context, now time.Time) ([]RoomView, error) {
	rs, err := s.rooms.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]RoomView, 0, len(rs))
	for _, r := range rs {
		view := RoomView{Room: r}
		if r.ManualStatus != nil {
			view.EffectiveStatus = *r.ManualStatus
		} else {
			st, err := s.ComputedStatus(ctx, r.Building, r.Name, now)
			if err != nil {
				return nil, err
			}
			view.EffectiveStatus = st
		}
		out = append(out, view)
	}
	return out, nil
}
