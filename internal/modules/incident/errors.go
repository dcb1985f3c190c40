package incident

import "errors"

var (
	ErrValidation          = errors.New("validation error")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrNotFound            = errors.New("incident not found")
	ErrAlertNotFound       = errors.New("alert not found")
	ErrIncidentClosed      = errors.New("incident already in a terminal state")
	ErrForbidden           = errors.New("forbidden")
)
