package domain

type RoomCategory string

const (
	CategoryGeneral  RoomCategory = "general"
	CategoryTeaching RoomCategory = "teaching"
	CategoryGraduate RoomCategory = "graduate"
)

func (c RoomCategory) Valid() bool {
	switch c {
	case CategoryGeneral, CategoryTeaching, CategoryGraduate:
		return true
	}
	return false
}

// RoomStatus is an operational status, either derived from the schedule or set
// by an administrator as a manual override.
type RoomStatus string

const (
	StatusOperational  RoomStatus = "operational"
	StatusImpaired     RoomStatus = "impaired"
	StatusOutOfService RoomStatus = "out_of_service"

	// Derived-only values, never stored.
	StatusOccupied  RoomStatus = "occupied"
	StatusAvailable RoomStatus = "available"
)

func (s RoomStatus) ValidOverride() bool {
	switch s {
	case StatusOperational, StatusImpaired, StatusOutOfService:
		return true
	}
	return false
}

// Room is reference data identified by (building, name). ManualStatus is nil
// when no administrator override is in effect.
type Room struct {
	Name         string       `json:"name"`
	Building     string       `json:"building"`
	Capacity     int          `json:"capacity"`
	Category     RoomCategory `json:"category"`
	ManualStatus *RoomStatus  `json:"manual_status,omitempty"`
}
