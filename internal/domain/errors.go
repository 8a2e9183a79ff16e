package domain

import "errors"

// Error kinds shared by every layer. Package-level sentinels wrap one of these
// so handlers can map any failure to a response with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrAlreadyValidated  = errors.New("already validated")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidPeriod     = errors.New("invalid period")
	ErrInvalidInput      = errors.New("invalid input")
	ErrSlotNotAvailable  = errors.New("slot not available")
)
