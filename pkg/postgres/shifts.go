package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/hamshifts/shift-scheduler/pkg/core/model"
	"github.com/hamshifts/shift-scheduler/pkg/db"
)

// foreignKeyViolation is the SQLSTATE raised when the parent event is missing
const foreignKeyViolation = "23503"

// UpsertShift inserts the shift or refreshes time, band and mode of an
// existing one. The reservation columns are never part of the update.
func (d *DB) UpsertShift(ctx context.Context, eventID string, shift *model.Shift) (bool, error) {
	var created bool
	err := d.pool.QueryRow(ctx, `
		INSERT INTO shift (event_id, id, time, band, mode)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (event_id, id) DO UPDATE SET
			time = EXCLUDED.time,
			band = EXCLUDED.band,
			mode = EXCLUDED.mode
		RETURNING (xmax = 0)
	`, eventID, shift.ID, shift.Time.UTC(), shift.Band, shift.Mode).Scan(&created)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return false, fmt.Errorf("%w: %s", db.ErrEventNotFound, eventID)
		}
		return false, fmt.Errorf("failed to upsert shift: %w", err)
	}
	return created, nil
}

// GetShifts retrieves every shift of an event ordered by time
func (d *DB) GetShifts(ctx context.Context, eventID string) ([]model.Shift, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, time, band, mode, reserved_by, reserved_details
		FROM shift
		WHERE event_id = $1
		ORDER BY time, id
	`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	var shifts []model.Shift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, *s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shifts: %w", err)
	}

	return shifts, nil
}

func scanShift(row pgx.Row) (*model.Shift, error) {
	var s model.Shift
	if err := row.Scan(&s.ID, &s.Time, &s.Band, &s.Mode, &s.ReservedBy, &s.ReservedDetails); err != nil {
		return nil, err
	}
	s.Time = s.Time.UTC()
	return &s, nil
}

// UpdateShift locks the shift row, hands the event and the current document
// to fn and persists the reservation pair fn returns
func (d *DB) UpdateShift(ctx context.Context, eventID, shiftID string, fn db.ShiftUpdateFunc) (*model.Shift, error) {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	event, err := getEvent(ctx, tx, eventID)
	if err != nil {
		return nil, err
	}

	row := tx.QueryRow(ctx, `
		SELECT id, time, band, mode, reserved_by, reserved_details
		FROM shift
		WHERE event_id = $1 AND id = $2
		FOR UPDATE
	`, eventID, shiftID)
	shift, err := scanShift(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", db.ErrShiftNotFound, shiftID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock shift: %w", err)
	}

	updated, err := fn(event, shift.ToDocument())
	if err != nil {
		return nil, err
	}

	shift.ReservedBy, shift.ReservedDetails, err = updated.Reservation()
	if err != nil {
		return nil, fmt.Errorf("invalid shift update: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE shift SET reserved_by = $3, reserved_details = $4
		WHERE event_id = $1 AND id = $2
	`, eventID, shiftID, shift.ReservedBy, shift.ReservedDetails)
	if err != nil {
		return nil, fmt.Errorf("failed to update shift: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	d.logger.Debug("Shift reservation updated",
		zap.String("event_id", eventID),
		zap.String("shift_id", shiftID),
		zap.Bool("reserved", shift.Reserved()))

	return shift, nil
}
