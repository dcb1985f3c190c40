package reservation

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"reservasalas/internal/domain"
	"reservasalas/internal/pkg/validator"
	"reservasalas/internal/repository"
	"reservasalas/internal/slots"
)

type Service struct {
	reservations ReservationRepository
	rooms        RoomRepository
	sanctions    SanctionNotifier
}

func NewService(reservations ReservationRepository, rooms RoomRepository, sanctions SanctionNotifier) *Service {
	return &Service{
		reservations: reservations,
		rooms:        rooms,
		sanctions:    sanctions,
	}
}

// Create books the requested slots as one unit: every slot commits or none
// do. The per-slot rows share a transaction, and the unique index over
// (building, room, date, slot, status=active) decides races between
// concurrent callers; the losing committer gets ErrSlotTaken.
func (s *Service) Create(ctx context.Context, actor domain.Identity, req CreateReservationRequest) ([]domain.Reservation, error) {
	if !validator.ValidCI(actor.CI) {
		return nil, ErrValidation
	}
	if req.RoomName == "" || req.Building == "" {
		return nil, ErrValidation
	}

	day, err := time.ParseInLocation(domain.DateLayout, req.Date, time.Local)
	if err != nil {
		return nil, ErrValidation
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if day.Before(today) {
		return nil, ErrValidation
	}

	slotIDs := dedupeInts(req.SlotIDs)
	if len(slotIDs) == 0 || len(slotIDs) > 2 {
		return nil, ErrValidation
	}
	for _, id := range slotIDs {
		start, err := slots.StartOn(id, day)
		if err != nil {
			return nil, ErrValidation
		}
		// Booking a slot that has already begun today is booking the past.
		if day.Equal(today) && !start.After(now) {
			return nil, ErrValidation
		}
	}

	participants, err := normalizeParticipants(req.Participants, actor.CI)
	if err != nil {
		return nil, err
	}

	if _, err := s.rooms.GetByKey(ctx, req.Building, req.RoomName); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	rs := make([]*domain.Reservation, 0, len(slotIDs))
	for _, slotID := range slotIDs {
		rs = append(rs, &domain.Reservation{
			RoomName:     req.RoomName,
			Building:     req.Building,
			Date:         req.Date,
			SlotID:       slotID,
			Participants: participants,
			Creator:      actor.CI,
			Status:       domain.ReservationActive,
		})
	}

	if err := s.reservations.CreateBatch(ctx, rs); err != nil {
		if isDuplicateKey(err) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	out := make([]domain.Reservation, 0, len(rs))
	for _, r := range rs {
		out = append(out, *r)
	}
	return out, nil
}

// Cancel is a one-way transition. Cancelling an already cancelled reservation
// fails with ErrAlreadyCancelled; it never silently succeeds.
func (s *Service) Cancel(ctx context.Context, actor domain.Identity, id int64) (*domain.Reservation, error) {
	r, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !actor.IsAdmin && !r.HasParticipant(actor.CI) {
		return nil, ErrForbidden
	}

	if r.Status == domain.ReservationCancelled {
		return nil, ErrAlreadyCancelled
	}

	ok, err := s.reservations.CancelActive(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		// A concurrent cancel got there first.
		return nil, ErrAlreadyCancelled
	}

	if s.sanctions != nil {
		_ = s.sanctions.NotifyCancellation(ctx, r.Creator, r.ID, "cancelled by "+actor.CI)
	}

	r.Status = domain.ReservationCancelled
	return r, nil
}

// Delete hard-removes the record regardless of status, bypassing the
// cancellation step. Administrator cleanup only.
func (s *Service) Delete(ctx context.Context, actor domain.Identity, id int64) error {
	if !actor.IsAdmin {
		return ErrForbidden
	}

	ok, err := s.reservations.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *Service) ListMine(ctx context.Context, actor domain.Identity) ([]domain.Reservation, error) {
	return s.reservations.ListByParticipant(ctx, actor.CI)
}

func (s *Service) ListAll(ctx context.Context, actor domain.Identity) ([]domain.Reservation, error) {
	if !actor.IsAdmin {
		return nil, ErrForbidden
	}
	return s.reservations.ListAll(ctx)
}

// normalizeParticipants validates every CI, removes duplicates preserving
// order, and guarantees the creator is part of the set.
func normalizeParticipants(participants []string, creator string) ([]string, error) {
	out := make([]string, 0, len(participants)+1)
	seen := make(map[string]bool, len(participants)+1)
	for _, ci := range participants {
		if !validator.ValidCI(ci) {
			return nil, ErrValidation
		}
		if seen[ci] {
			continue
		}
		seen[ci] = true
		out = append(out, ci)
	}
	if !seen[creator] {
		out = append(out, creator)
	}
	return out, nil
}

func dedupeInts(in []int) []int {
	out := make([]int, 0, len(in))
	seen := make(map[int]bool, len(in))
	for _, v := range in {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// The sqlite backend reports index violations as a plain error string.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
