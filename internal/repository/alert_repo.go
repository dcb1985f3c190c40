package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"reservasalas/internal/domain"
)

type AlertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

type alertModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	IncidentID int64     `gorm:"column:incident_id;index"`
	Recipient  string    `gorm:"column:recipient;index:idx_alerts_recipient_unread"`
	Message    string    `gorm:"column:message;type:text"`
	Read       bool      `gorm:"column:read;index:idx_alerts_recipient_unread"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (alertModel) TableName() string { return "alerts" }

func toDomainAlert(m alertModel) *domain.Alert {
	return &domain.Alert{
		ID:         m.ID,
		IncidentID: m.IncidentID,
		Recipient:  m.Recipient,
		Message:    m.Message,
		Read:       m.Read,
		CreatedAt:  m.CreatedAt,
	}
}

func (r *AlertRepository) GetByID(ctx context.Context, id int64) (*domain.Alert, error) {
	var m alertModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainAlert(m), nil
}

func (r *AlertRepository) ListByRecipient(ctx context.Context, ci string) ([]domain.Alert, error) {
	var ms []alertModel
	tx := r.db.WithContext(ctx).
		Where("recipient = ?", ci).
		Order("created_at DESC").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Alert, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainAlert(m))
	}
	return out, nil
}

// MarkRead sets read=true. Re-marking an already read alert is a no-op; the
// flag never reverts.
func (r *AlertRepository) MarkRead(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).
		Model(&alertModel{}).
		Where("id = ?", id).
		Update("read", true)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *AlertRepository) CountUnread(ctx context.Context, ci string) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&alertModel{}).
		Where("recipient = ? AND read = ?", ci, false).
		Count(&cnt)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return cnt, nil
}
