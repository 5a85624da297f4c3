package firestore

import (
	"context"
	"fmt"

	gcfirestore "cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/hamshifts/shift-scheduler/pkg/core/model"
	"github.com/hamshifts/shift-scheduler/pkg/db"
)

// UpsertShift creates the shift document, or if it already exists merges
// only time, band and mode into it so a reservation survives regeneration
func (d *DB) UpsertShift(ctx context.Context, eventID string, shift *model.Shift) (bool, error) {
	ref := d.shifts(eventID).Doc(shift.ID)

	_, err := ref.Create(ctx, newShiftDocument(shift))
	if err == nil {
		return true, nil
	}
	if status.Code(err) != codes.AlreadyExists {
		return false, fmt.Errorf("failed to create shift: %w", err)
	}

	_, err = ref.Set(ctx, map[string]any{
		model.FieldTime: shift.Time.UTC(),
		model.FieldBand: shift.Band,
		model.FieldMode: shift.Mode,
	}, gcfirestore.MergeAll)
	if err != nil {
		return false, fmt.Errorf("failed to merge shift: %w", err)
	}
	return false, nil
}

// newShiftDocument is the payload of a freshly generated, unreserved shift
func newShiftDocument(shift *model.Shift) map[string]any {
	return map[string]any{
		model.FieldTime:            shift.Time.UTC(),
		model.FieldBand:            shift.Band,
		model.FieldMode:            shift.Mode,
		model.FieldReservedBy:      nil,
		model.FieldReservedDetails: nil,
	}
}

// GetShifts reads every shift of an event ordered by time
func (d *DB) GetShifts(ctx context.Context, eventID string) ([]model.Shift, error) {
	snaps, err := d.shifts(eventID).OrderBy(model.FieldTime, gcfirestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}

	shifts := make([]model.Shift, 0, len(snaps))
	for _, snap := range snaps {
		var s model.Shift
		if err := snap.DataTo(&s); err != nil {
			return nil, fmt.Errorf("failed to decode shift %s: %w", snap.Ref.ID, err)
		}
		s.ID = snap.Ref.ID
		s.Time = s.Time.UTC()
		shifts = append(shifts, s)
	}
	return shifts, nil
}

// UpdateShift runs fn in a Firestore transaction. Firestore retries the
// transaction on contention, so fn may run more than once.
func (d *DB) UpdateShift(ctx context.Context, eventID, shiftID string, fn db.ShiftUpdateFunc) (*model.Shift, error) {
	eventRef := d.events().Doc(eventID)
	shiftRef := d.shifts(eventID).Doc(shiftID)

	var result *model.Shift
	err := d.client.RunTransaction(ctx, func(ctx context.Context, tx *gcfirestore.Transaction) error {
		eventSnap, err := tx.Get(eventRef)
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("%w: %s", db.ErrEventNotFound, eventID)
		}
		if err != nil {
			return fmt.Errorf("failed to get event: %w", err)
		}
		event, err := eventFromSnapshot(eventSnap)
		if err != nil {
			return err
		}

		shiftSnap, err := tx.Get(shiftRef)
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("%w: %s", db.ErrShiftNotFound, shiftID)
		}
		if err != nil {
			return fmt.Errorf("failed to get shift: %w", err)
		}

		var shift model.Shift
		if err := shiftSnap.DataTo(&shift); err != nil {
			return fmt.Errorf("failed to decode shift %s: %w", shiftID, err)
		}
		shift.ID = shiftID

		updated, err := fn(event, model.Document(shiftSnap.Data()))
		if err != nil {
			return err
		}

		shift.ReservedBy, shift.ReservedDetails, err = updated.Reservation()
		if err != nil {
			return fmt.Errorf("invalid shift update: %w", err)
		}

		result = &shift
		return tx.Update(shiftRef, []gcfirestore.Update{
			{Path: model.FieldReservedBy, Value: updated[model.FieldReservedBy]},
			{Path: model.FieldReservedDetails, Value: updated[model.FieldReservedDetails]},
		})
	})
	if err != nil {
		return nil, err
	}

	d.logger.Debug("Shift reservation updated",
		zap.String("event_id", eventID),
		zap.String("shift_id", shiftID),
		zap.Bool("reserved", result.Reserved()))

	return result, nil
}
