package domain

import "errors"

// Domain errors (no external dependencies).
var (
	ErrNotFound          = errors.New("resource not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrDuplicateCode     = errors.New("item code already registered")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrSessionRevoked    = errors.New("session revoked or expired")
	ErrConflict          = errors.New("conflict with current state")
	ErrEmptyFile         = errors.New("file is empty or malformed")
)
