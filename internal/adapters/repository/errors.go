package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound  = errors.New("session not found")
	ErrInvalidID = errors.New("invalid session id")
	ErrCorrupt   = errors.New("corrupt session record")
)
