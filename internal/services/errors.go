package services

import "errors"

// Sentinel errors the HTTP layer maps to status codes.
var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthorized    = errors.New("not allowed")
	ErrInvalidState    = errors.New("invalid state")
	ErrValidation      = errors.New("validation failed")
	ErrAlreadyEnrolled = errors.New("already enrolled")
	ErrAlreadyExists   = errors.New("already exists")
)
