package reservation

import "errors"

var (
	ErrValidation       = errors.New("validation error")
	ErrRoomNotFound     = errors.New("room not found")
	ErrNotFound         = errors.New("reservation not found")
	ErrSlotTaken        = errors.New("slot already booked")
	ErrAlreadyCancelled = errors.New("reservation already cancelled")
	ErrForbidden        = errors.New("forbidden")
)
