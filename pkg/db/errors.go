package db

import "errors"

var (
	// ErrEventNotFound is returned when an event document does not exist
	ErrEventNotFound = errors.New("event not found")
	// ErrShiftNotFound is returned when a shift document does not exist
	ErrShiftNotFound = errors.New("shift not found")
	// ErrPermissionDenied is returned when the policy engine rejects a write
	ErrPermissionDenied = errors.New("permission denied")
)
