package rooms

import "reservasalas/internal/domain"

type CreateRoomRequest struct {
	Name     string `json:"name" binding:"required"`
	Building string `json:"building" binding:"required"`
	Capacity int    `json:"capacity" binding:"required,gt=0"`
	Category string `json:"category" binding:"required"`
}

type UpdateRoomRequest struct {
	Capacity int    `json:"capacity" binding:"required,gt=0"`
	Category string `json:"category" binding:"required"`
}

// SetStatusRequest carries the manual override. A null manual_status clears
// the override explicitly, it does not mean "operational".
type SetStatusRequest struct {
	ManualStatus *string `json:"manual_status"`
}

// RoomView is a room plus the status callers should see: the manual
// override when set, the schedule-derived status otherwise.
type RoomView struct {
	domain.Room
	EffectiveStatus domain.RoomStatus `json:"effective_status"`
}
