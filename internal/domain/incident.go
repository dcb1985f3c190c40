package domain

import "time"

type IncidentType string

const (
	IncidentEquipment      IncidentType = "equipment"
	IncidentInfrastructure IncidentType = "infrastructure"
	IncidentCleanliness    IncidentType = "cleanliness"
	IncidentOther          IncidentType = "other"
)

func (t IncidentType) Valid() bool {
	switch t {
	case IncidentEquipment, IncidentInfrastructure, IncidentCleanliness, IncidentOther:
		return true
	}
	return false
}

type IncidentSeverity string

const (
	SeverityLow    IncidentSeverity = "low"
	SeverityMedium IncidentSeverity = "medium"
	SeverityHigh   IncidentSeverity = "high"
)

func (s IncidentSeverity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	}
	return false
}

type IncidentStatus string

const (
	IncidentOpen       IncidentStatus = "open"
	IncidentInProgress IncidentStatus = "in_progress"
	IncidentResolved   IncidentStatus = "resolved"
	IncidentCancelled  IncidentStatus = "cancelled"
)

func (s IncidentStatus) Valid() bool {
	switch s {
	case IncidentOpen, IncidentInProgress, IncidentResolved, IncidentCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed from s.
func (s IncidentStatus) Terminal() bool {
	return s == IncidentResolved || s == IncidentCancelled
}

// Incident is a reported operational problem tied to a reservation. Room and
// building are denormalized so the record survives reservation deletion.
type Incident struct {
	ID            int64            `json:"id"`
	ReservationID int64            `json:"reservation_id"`
	RoomName      string           `json:"room_name"`
	Building      string           `json:"building"`
	Reporter      string           `json:"reporter"`
	Type          IncidentType     `json:"type"`
	Severity      IncidentSeverity `json:"severity"`
	Description   string           `json:"description"`
	Status        IncidentStatus   `json:"status"`
	CreatedAt     time.Time        `json:"created_at"`
}

// Alert is a per-recipient notification generated from an incident. Read is
// monotone: once true it never reverts.
type Alert struct {
	ID         int64     `json:"id"`
	IncidentID int64     `json:"incident_id"`
	Recipient  string    `json:"recipient"`
	Message    string    `json:"message"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}
