package services

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/hamshifts/shift-scheduler/pkg/core/model"
)

// DefineEventStore defines the database operations needed to define an event
type DefineEventStore interface {
	UpsertEvent(ctx context.Context, event *model.Event) error
}

// DefineEvent validates the event and writes its document. Event documents are
// never written by clients, so this is the only path that sets admins.
func DefineEvent(ctx context.Context, database DefineEventStore, logger *zap.Logger, event model.Event) (*model.Event, error) {
	logger.Debug("Defining event", zap.String("event_id", event.ID))

	event.StartTime = event.StartTime.UTC()
	event.EndTime = event.EndTime.UTC()

	// Admins is a set
	admins := slices.Clone(event.Admins)
	slices.Sort(admins)
	event.Admins = slices.Compact(admins)

	if err := model.Validate(event); err != nil {
		return nil, fmt.Errorf("invalid event %s: %w", event.ID, err)
	}

	if err := database.UpsertEvent(ctx, &event); err != nil {
		return nil, fmt.Errorf("failed to upsert event: %w", err)
	}

	logger.Debug("Event defined",
		zap.String("event_id", event.ID),
		zap.Time("start", event.StartTime),
		zap.Time("end", event.EndTime),
		zap.Int("admin_count", len(event.Admins)))

	return &event, nil
}
