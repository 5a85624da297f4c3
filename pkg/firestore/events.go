package firestore

import (
	"context"
	"fmt"

	gcfirestore "cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/hamshifts/shift-scheduler/pkg/core/model"
	"github.com/hamshifts/shift-scheduler/pkg/db"
)

// GetEvent reads events/{eventID}
func (d *DB) GetEvent(ctx context.Context, eventID string) (*model.Event, error) {
	snap, err := d.events().Doc(eventID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, fmt.Errorf("%w: %s", db.ErrEventNotFound, eventID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return eventFromSnapshot(snap)
}

// ListEvents reads every event document
func (d *DB) ListEvents(ctx context.Context) ([]model.Event, error) {
	snaps, err := d.events().OrderBy(model.FieldStartTime, gcfirestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}

	events := make([]model.Event, 0, len(snaps))
	for _, snap := range snaps {
		e, err := eventFromSnapshot(snap)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, nil
}

// UpsertEvent overwrites events/{event.ID}. Shift subcollections are not
// affected.
func (d *DB) UpsertEvent(ctx context.Context, event *model.Event) error {
	if _, err := d.events().Doc(event.ID).Set(ctx, event); err != nil {
		return fmt.Errorf("failed to upsert event: %w", err)
	}
	return nil
}

func eventFromSnapshot(snap *gcfirestore.DocumentSnapshot) (*model.Event, error) {
	var e model.Event
	if err := snap.DataTo(&e); err != nil {
		return nil, fmt.Errorf("failed to decode event %s: %w", snap.Ref.ID, err)
	}
	e.ID = snap.Ref.ID
	return &e, nil
}
