package repository

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"reservasalas/internal/domain"
)

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

type reservationModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	RoomName     string    `gorm:"column:room_name;uniqueIndex:idx_no_double_booking"`
	Building     string    `gorm:"column:building;uniqueIndex:idx_no_double_booking"`
	Date         string    `gorm:"column:date;uniqueIndex:idx_no_double_booking"`
	SlotID       int       `gorm:"column:slot_id;uniqueIndex:idx_no_double_booking,where:status = 'active'"`
	Participants string    `gorm:"column:participants;type:text"`
	Creator      string    `gorm:"column:creator;index"`
	Status       string    `gorm:"column:status"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (reservationModel) TableName() string { return "reservations" }

func toDomainReservation(m reservationModel) *domain.Reservation {
	var participants []string
	if m.Participants != "" {
		_ = json.Unmarshal([]byte(m.Participants), &participants)
	}

	return &domain.Reservation{
		ID:           m.ID,
		RoomName:     m.RoomName,
		Building:     m.Building,
		Date:         m.Date,
		SlotID:       m.SlotID,
		Participants: participants,
		Creator:      m.Creator,
		Status:       domain.ReservationStatus(m.Status),
		CreatedAt:    m.CreatedAt,
	}
}

func toReservationModel(r *domain.Reservation) (reservationModel, error) {
	participants, err := json.Marshal(r.Participants)
	if err != nil {
		return reservationModel{}, err
	}

	return reservationModel{
		ID:           r.ID,
		RoomName:     r.RoomName,
		Building:     r.Building,
		Date:         r.Date,
		SlotID:       r.SlotID,
		Participants: string(participants),
		Creator:      r.Creator,
		Status:       string(r.Status),
		CreatedAt:    r.CreatedAt,
	}, nil
}

// CreateBatch inserts every reservation in one transaction. A constraint
// violation on any row aborts the whole batch, so a multi-slot booking is
// all-or-nothing. On success the assigned ids are written back.
func (r *ReservationRepository) CreateBatch(ctx context.Context, rs []*domain.Reservation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, res := range rs {
			m, err := toReservationModel(res)
			if err != nil {
				return err
			}
			if err := tx.Create(&m).Error; err != nil {
				return err
			}
			res.ID = m.ID
			res.CreatedAt = m.CreatedAt
		}
		return nil
	})
}

func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	var m reservationModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainReservation(m), nil
}

// CancelActive flips an active reservation to cancelled. The status guard in
// the WHERE clause makes concurrent double-cancels lose cleanly: the second
// caller sees zero rows affected.
func (r *ReservationRepository) CancelActive(ctx context.Context, id int64) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&reservationModel{}).
		Where("id = ? AND status = ?", id, string(domain.ReservationActive)).
		Update("status", string(domain.ReservationCancelled))
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// Delete removes the record regardless of status. Administrator cleanup only.
func (r *ReservationRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&reservationModel{}, id)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *ReservationRepository) ListByParticipant(ctx context.Context, ci string) ([]domain.Reservation, error) {
	var ms []reservationModel
	// Participants is stored as a text column holding a JSON array of quoted
	// CIs, so the LIKE over the quoted value applies on both backends and
	// cannot match a CI that is a prefix of another.
	tx := r.db.WithContext(ctx).
		Where("creator = ? OR participants LIKE ?", ci, `%"`+ci+`"%`).
		Order("date, slot_id").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Reservation, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainReservation(m))
	}
	return out, nil
}

func (r *ReservationRepository) ListAll(ctx context.Context) ([]domain.Reservation, error) {
	var ms []reservationModel
	tx := r.db.WithContext(ctx).Order("date, slot_id").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Reservation, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainReservation(m))
	}
	return out, nil
}

// CountActiveAt counts active reservations for one (room, date, slot) triple.
// Used by the status engine; reads an already-committed snapshot, no locking.
func (r *ReservationRepository) CountActiveAt(ctx context.Context, building, roomName, date string, slotID int) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&reservationModel{}).
		Where("building = ? AND room_name = ? AND date = ? AND slot_id = ? AND status = ?",
			building, roomName, date, slotID, string(domain.ReservationActive)).
		Count(&cnt)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return cnt, nil
}
