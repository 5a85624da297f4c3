package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hamshifts/shift-scheduler/pkg/core/model"
	"github.com/hamshifts/shift-scheduler/pkg/core/policy"
	"github.com/hamshifts/shift-scheduler/pkg/db"
)

// ShiftUpdate is a requested change to a shift's reservation pair
type ShiftUpdate struct {
	EventID   string
	ShiftID   string
	Principal *model.Principal
	// ReservedBy nil releases the shift
	ReservedBy *string
	Details    *model.ReservedDetails
}

// ApplyShiftUpdate evaluates the update against the access policy and writes
// it in the same transaction that read the shift, so two racing claims on an
// open shift cannot both succeed. A rejected update returns an error wrapping
// db.ErrPermissionDenied.
func ApplyShiftUpdate(ctx context.Context, database db.ShiftTransactor, logger *zap.Logger, upd ShiftUpdate) (*model.Shift, error) {
	path := policy.ShiftPath{EventID: upd.EventID, ShiftID: upd.ShiftID}.String()

	logger.Debug("Applying shift update",
		zap.String("path", path),
		zap.Bool("release", upd.ReservedBy == nil))

	shift, err := database.UpdateShift(ctx, upd.EventID, upd.ShiftID, func(event *model.Event, existing model.Document) (model.Document, error) {
		incoming := existing.WithReservation(upd.ReservedBy, upd.Details)

		engine := policy.NewEngine(policy.NewAdminIndex(*event), logger)
		result := engine.Decide(policy.Request{
			Path:      path,
			Operation: policy.OpUpdate,
			Principal: upd.Principal,
			Existing:  existing,
			Incoming:  incoming,
		})
		if !result.Allowed() {
			return nil, fmt.Errorf("%w: %s", db.ErrPermissionDenied, result.Rule)
		}
		return incoming, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update shift %s: %w", upd.ShiftID, err)
	}

	return shift, nil
}

// ClaimShift reserves a shift for user, snapshotting their public profile
func ClaimShift(ctx context.Context, database db.ShiftTransactor, logger *zap.Logger, eventID, shiftID string, user model.User) (*model.Shift, error) {
	uid := user.ID
	return ApplyShiftUpdate(ctx, database, logger, ShiftUpdate{
		EventID:    eventID,
		ShiftID:    shiftID,
		Principal:  &model.Principal{UID: uid},
		ReservedBy: &uid,
		Details:    model.DetailsFor(user),
	})
}

// CancelShift releases a shift. The principal must hold the reservation or
// administer the event.
func CancelShift(ctx context.Context, database db.ShiftTransactor, logger *zap.Logger, eventID, shiftID string, principal *model.Principal) (*model.Shift, error) {
	return ApplyShiftUpdate(ctx, database, logger, ShiftUpdate{
		EventID:   eventID,
		ShiftID:   shiftID,
		Principal: principal,
	})
}
