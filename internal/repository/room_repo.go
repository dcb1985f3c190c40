package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"reservasalas/internal/domain"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

type roomModel struct {
	Name         string  `gorm:"column:name;primaryKey"`
	Building     string  `gorm:"column:building;primaryKey"`
	Capacity     int     `gorm:"column:capacity"`
	Category     string  `gorm:"column:category"`
	ManualStatus *string `gorm:"column:manual_status"`
}

func (roomModel) TableName() string { return "rooms" }

func toDomainRoom(m roomModel) *domain.Room {
	var ms *domain.RoomStatus
	if m.ManualStatus != nil {
		v := domain.RoomStatus(*m.ManualStatus)
		ms = &v
	}

	return &domain.Room{
		Name:         m.Name,
		Building:     m.Building,
		Capacity:     m.Capacity,
		Category:     domain.RoomCategory(m.Category),
		ManualStatus: ms,
	}
}

func toRoomModel(r *domain.Room) roomModel {
	var ms *string
	if r.ManualStatus != nil {
		v := string(*r.ManualStatus)
		ms = &v
	}

	return roomModel{
		Name:         r.Name,
		Building:     r.Building,
		Capacity:     r.Capacity,
		Category:     string(r.Category),
		ManualStatus: ms,
	}
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	m := toRoomModel(room)
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *RoomRepository) GetByKey(ctx context.Context, building, name string) (*domain.Room, error) {
	var m roomModel
	tx := r.db.WithContext(ctx).
		Where("building = ? AND name = ?", building, name).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainRoom(m), nil
}

func (r *RoomRepository) List(ctx context.Context) ([]domain.Room, error) {
	var ms []roomModel
	tx := r.db.WithContext(ctx).Order("building, name").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Room, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainRoom(m))
	}
	return out, nil
}

// Update changes capacity and category. Rooms are never deleted in the normal
// flow, so there is no Delete.
func (r *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	tx := r.db.WithContext(ctx).
		Model(&roomModel{}).
		Where("building = ? AND name = ?", room.Building, room.Name).
		Updates(map[string]any{
			"capacity": room.Capacity,
			"category": string(room.Category),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetManualStatus assigns or clears the administrator override. A nil value
// clears it.
func (r *RoomRepository) SetManualStatus(ctx context.Context, building, name string, value *domain.RoomStatus) error {
	var v any
	if value != nil {
		v = string(*value)
	}

	tx := r.db.WithContext(ctx).
		Model(&roomModel{}).
		Where("building = ? AND name = ?", building, name).
		Update("manual_status", v)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IsNotFound reports whether err is the data layer's missing-record error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
