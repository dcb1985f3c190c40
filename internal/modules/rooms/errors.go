package rooms

import "errors"

var (
	ErrValidation    = errors.New("validation error")
	ErrNotFound      = errors.New("room not found")
	ErrAlreadyExists = errors.New("room already exists")
	ErrForbidden     = errors.New("forbidden")
)
