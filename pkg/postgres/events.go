package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hamshifts/shift-scheduler/pkg/core/model"
	"github.com/hamshifts/shift-scheduler/pkg/db"
)

const selectEvent = `
	SELECT e.id, e.name, e.slug, e.coordinator_name, e.coordinator_callsign,
		e.start_time, e.end_time, e.time_zone_id,
		COALESCE(array_agg(a.user_id ORDER BY a.user_id) FILTER (WHERE a.user_id IS NOT NULL), '{}')
	FROM event e
	LEFT JOIN event_admin a ON a.event_id = e.id
`

// querier is satisfied by both the pool and a transaction
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// GetEvent retrieves an event and its admins
func (d *DB) GetEvent(ctx context.Context, eventID string) (*model.Event, error) {
	return getEvent(ctx, d.pool, eventID)
}

func getEvent(ctx context.Context, q querier, eventID string) (*model.Event, error) {
	row := q.QueryRow(ctx, selectEvent+` WHERE e.id = $1 GROUP BY e.id`, eventID)

	e, err := scanEvent(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", db.ErrEventNotFound, eventID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return e, nil
}

// ListEvents retrieves every event with its admins
func (d *DB) ListEvents(ctx context.Context) ([]model.Event, error) {
	rows, err := d.pool.Query(ctx, selectEvent+` GROUP BY e.id ORDER BY e.start_time, e.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, *e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}

func scanEvent(row pgx.Row) (*model.Event, error) {
	var e model.Event
	err := row.Scan(&e.ID, &e.Name, &e.Slug, &e.CoordinatorName, &e.CoordinatorCallsign,
		&e.StartTime, &e.EndTime, &e.TimeZoneID, &e.Admins)
	if err != nil {
		return nil, err
	}
	e.StartTime = e.StartTime.UTC()
	e.EndTime = e.EndTime.UTC()
	return &e, nil
}

// UpsertEvent writes the event row and replaces its admin set
func (d *DB) UpsertEvent(ctx context.Context, event *model.Event) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO event (id, name, slug, coordinator_name, coordinator_callsign, start_time, end_time, time_zone_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			slug = EXCLUDED.slug,
			coordinator_name = EXCLUDED.coordinator_name,
			coordinator_callsign = EXCLUDED.coordinator_callsign,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			time_zone_id = EXCLUDED.time_zone_id
	`, event.ID, event.Name, event.Slug, event.CoordinatorName, event.CoordinatorCallsign,
		event.StartTime.UTC(), event.EndTime.UTC(), event.TimeZoneID)
	if err != nil {
		return fmt.Errorf("failed to upsert event: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM event_admin WHERE event_id = $1`, event.ID); err != nil {
		return fmt.Errorf("failed to clear event admins: %w", err)
	}

	for _, uid := range event.Admins {
		_, err := tx.Exec(ctx, `
			INSERT INTO event_admin (event_id, user_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, event.ID, uid)
		if err != nil {
			return fmt.Errorf("failed to insert event admin: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
