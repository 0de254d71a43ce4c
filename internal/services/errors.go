package services

import "errors"

// Sentinel errors the handlers map onto HTTP statuses. Services wrap these
// with %w so callers can errors.Is them.
var (
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrNotFound          = errors.New("not found")
	ErrDuplicate         = errors.New("already exists")
	ErrInvalidInput      = errors.New("invalid input")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrGeneration        = errors.New("generation failed")
)
