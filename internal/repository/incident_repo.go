package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"reservasalas/internal/domain"
)

type IncidentRepository struct {
	db *gorm.DB
}

func NewIncidentRepository(db *gorm.DB) *IncidentRepository {
	return &IncidentRepository{db: db}
}

type incidentModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	ReservationID int64     `gorm:"column:reservation_id;index"`
	RoomName      string    `gorm:"column:room_name"`
	Building      string    `gorm:"column:building"`
	Reporter      string    `gorm:"column:reporter;index"`
	Type          string    `gorm:"column:type"`
	Severity      string    `gorm:"column:severity"`
	Description   string    `gorm:"column:description;type:text"`
	Status        string    `gorm:"column:status"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (incidentModel) TableName() string { return "incidents" }

func toDomainIncident(m incidentModel) *domain.Incident {
	return &domain.Incident{
		ID:            m.ID,
		ReservationID: m.ReservationID,
		RoomName:      m.RoomName,
		Building:      m.Building,
		Reporter:      m.Reporter,
		Type:          domain.IncidentType(m.Type),
		Severity:      domain.IncidentSeverity(m.Severity),
		Description:   m.Description,
		Status:        domain.IncidentStatus(m.Status),
		CreatedAt:     m.CreatedAt,
	}
}

// CreateWithAlerts commits the incident and its whole alert fan-out as one
// transaction: either the incident plus one alert per recipient become
// visible, or nothing does.
func (r *IncidentRepository) CreateWithAlerts(ctx context.Context, inc *domain.Incident, recipients []string, message string) ([]domain.Alert, error) {
	var alerts []domain.Alert

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := incidentModel{
			ReservationID: inc.ReservationID,
			RoomName:      inc.RoomName,
			Building:      inc.Building,
			Reporter:      inc.Reporter,
			Type:          string(inc.Type),
			Severity:      string(inc.Severity),
			Description:   inc.Description,
			Status:        string(inc.Status),
		}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		inc.ID = m.ID
		inc.CreatedAt = m.CreatedAt

		for _, ci := range recipients {
			am := alertModel{
				IncidentID: m.ID,
				Recipient:  ci,
				Message:    message,
				Read:       false,
			}
			if err := tx.Create(&am).Error; err != nil {
				return err
			}
			alerts = append(alerts, *toDomainAlert(am))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *IncidentRepository) GetByID(ctx context.Context, id int64) (*domain.Incident, error) {
	var m incidentModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainIncident(m), nil
}

func (r *IncidentRepository) UpdateStatus(ctx context.Context, id int64, status domain.IncidentStatus) error {
	tx := r.db.WithContext(ctx).
		Model(&incidentModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteCascade removes the incident and exactly the alerts that reference
// it, in one transaction.
func (r *IncidentRepository) DeleteCascade(ctx context.Context, id int64) (bool, error) {
	found := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("incident_id = ?", id).Delete(&alertModel{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&incidentModel{}, id)
		if res.Error != nil {
			return res.Error
		}
		found = res.RowsAffected > 0
		return nil
	})
	return found, err
}

func (r *IncidentRepository) ListByReporter(ctx context.Context, ci string) ([]domain.Incident, error) {
	var ms []incidentModel
	tx := r.db.WithContext(ctx).
		Where("reporter = ?", ci).
		Order("created_at DESC").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Incident, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainIncident(m))
	}
	return out, nil
}

func (r *IncidentRepository) ListByRoom(ctx context.Context, building, roomName string) ([]domain.Incident, error) {
	var ms []incidentModel
	tx := r.db.WithContext(ctx).
		Where("building = ? AND room_name = ?", building, roomName).
		Order("created_at DESC").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Incident, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainIncident(m))
	}
	return out, nil
}
