package repository

import "gorm.io/gorm"

// Migrate creates or updates the schema for every table this package owns,
// including the partial unique index that enforces one active reservation
// per (building, room, date, slot).
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&roomModel{},
		&reservationModel{},
		&incidentModel{},
		&alertModel{},
	)
}
