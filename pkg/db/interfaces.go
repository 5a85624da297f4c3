package db

import (
	"context"

	"github.com/hamshifts/shift-scheduler/pkg/core/model"
)

// EventStore defines the interface for event document operations
type EventStore interface {
	GetEvent(ctx context.Context, eventID string) (*model.Event, error)
	ListEvents(ctx context.Context) ([]model.Event, error)
	UpsertEvent(ctx context.Context, event *model.Event) error
}

// ShiftStore defines the interface for shift document operations
type ShiftStore interface {
	// UpsertShift creates the shift if it does not exist, otherwise it
	// rewrites time, band and mode and leaves any reservation alone.
	// created reports which of the two happened.
	UpsertShift(ctx context.Context, eventID string, shift *model.Shift) (created bool, err error)
	GetShifts(ctx context.Context, eventID string) ([]model.Shift, error)
}

// ShiftUpdateFunc receives the owning event and the stored shift document and
// returns the document to write. Returning an error aborts the update.
type ShiftUpdateFunc func(event *model.Event, existing model.Document) (model.Document, error)

// ShiftTransactor applies read-modify-write updates to a single shift
type ShiftTransactor interface {
	// UpdateShift runs fn inside a transaction. Only reservedBy and
	// reservedDetails of the returned document are persisted.
	UpdateShift(ctx context.Context, eventID, shiftID string, fn ShiftUpdateFunc) (*model.Shift, error)
}

// Database defines the interface for all database operations.
// Both the Firestore-backed firestore.DB and postgres.DB implement this interface.
type Database interface {
	EventStore
	ShiftStore
	ShiftTransactor
	Close() error
}
