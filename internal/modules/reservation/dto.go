package reservation

// CreateReservationRequest books one room for one or two slots on a date. The
// creator comes from the identity token, never from the body.
type CreateReservationRequest struct {
	RoomName     string   `json:"room_name" binding:"required"`
	Building     string   `json:"building" binding:"required"`
	Date         string   `json:"date" binding:"required"` // YYYY-MM-DD
	SlotIDs      []int    `json:"slot_ids" binding:"required,min=1,max=2"`
	Participants []string `json:"participants" binding:"omitempty,dive,ci"`
}
