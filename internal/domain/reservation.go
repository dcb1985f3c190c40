package domain

import "time"

type ReservationStatus string

const (
	ReservationActive    ReservationStatus = "active"
	ReservationCancelled ReservationStatus = "cancelled"
)

// Reservation books one room for one slot on one date. A logical booking that
// spans two slots is stored as two rows created in the same transaction.
type Reservation struct {
	ID           int64             `json:"id"`
	RoomName     string            `json:"room_name"`
	Building     string            `json:"building"`
	Date         string            `json:"date"` // YYYY-MM-DD
	SlotID       int               `json:"slot_id"`
	Participants []string          `json:"participants"`
	Creator      string            `json:"creator"`
	Status       ReservationStatus `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
}

// HasParticipant reports whether ci is part of the reservation. The creator is
// always a participant.
func (r *Reservation) HasParticipant(ci string) bool {
	for _, p := range r.Participants {
		if p == ci {
			return true
		}
	}
	return false
}

const DateLayout = "2006-01-02"
