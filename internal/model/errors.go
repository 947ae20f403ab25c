package model

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation error")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrStaleVersion means another writer transitioned the shared event
	// between read and write; the caller should re-read and retry.
	ErrStaleVersion = errors.New("shared event modified concurrently")
)
