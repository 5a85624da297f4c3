package services

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/hamshifts/shift-scheduler/pkg/core/model"
)

// ListShiftsStore defines the database operations needed for the roster
type ListShiftsStore interface {
	GetEvent(ctx context.Context, eventID string) (*model.Event, error)
	GetShifts(ctx context.Context, eventID string) ([]model.Shift, error)
}

// RosterColumn is one band and mode combination
type RosterColumn struct {
	Band string
	Mode string
}

func (c RosterColumn) String() string {
	return c.Band + "/" + c.Mode
}

// ListShiftsResult is the event's shifts laid out as slot rows by band/mode
// columns
type ListShiftsResult struct {
	Event   *model.Event
	Slots   []time.Time    // chronological
	Columns []RosterColumn // band display order, then mode display order
	// Matrix is [slot index][column index], nil where no shift exists
	Matrix   [][]*model.Shift
	Total    int
	Reserved int
}

// ListShifts fetches an event's shifts and arranges them into a roster
func ListShifts(ctx context.Context, database ListShiftsStore, logger *zap.Logger, eventID string) (*ListShiftsResult, error) {
	logger.Debug("Listing shifts", zap.String("event_id", eventID))

	event, err := database.GetEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event: %w", err)
	}

	shifts, err := database.GetShifts(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shifts: %w", err)
	}

	result := &ListShiftsResult{Event: event, Total: len(shifts)}

	slotIndex := make(map[int64]int)
	colIndex := make(map[RosterColumn]int)
	for _, s := range shifts {
		key := s.Time.Unix()
		if _, ok := slotIndex[key]; !ok {
			slotIndex[key] = 0
			result.Slots = append(result.Slots, s.Time.UTC())
		}
		col := RosterColumn{Band: s.Band, Mode: s.Mode}
		if _, ok := colIndex[col]; !ok {
			colIndex[col] = 0
			result.Columns = append(result.Columns, col)
		}
		if s.Reserved() {
			result.Reserved++
		}
	}

	slices.SortFunc(result.Slots, func(a, b time.Time) int { return a.Compare(b) })
	slices.SortFunc(result.Columns, compareColumns)

	for i, slot := range result.Slots {
		slotIndex[slot.Unix()] = i
	}
	for i, col := range result.Columns {
		colIndex[col] = i
	}

	result.Matrix = make([][]*model.Shift, len(result.Slots))
	for i := range result.Matrix {
		result.Matrix[i] = make([]*model.Shift, len(result.Columns))
	}
	for i := range shifts {
		s := &shifts[i]
		result.Matrix[slotIndex[s.Time.Unix()]][colIndex[RosterColumn{Band: s.Band, Mode: s.Mode}]] = s
	}

	logger.Debug("Roster built",
		zap.Int("slots", len(result.Slots)),
		zap.Int("columns", len(result.Columns)),
		zap.Int("reserved", result.Reserved))

	return result, nil
}

// compareColumns orders by the known band and mode lists; unknown values
// sort last, alphabetically
func compareColumns(a, b RosterColumn) int {
	if c := compareByList(model.Bands, a.Band, b.Band); c != 0 {
		return c
	}
	return compareByList(model.Modes, a.Mode, b.Mode)
}

func compareByList(order []string, a, b string) int {
	ia, ib := slices.Index(order, a), slices.Index(order, b)
	if ia < 0 {
		ia = len(order)
	}
	if ib < 0 {
		ib = len(order)
	}
	if ia != ib {
		return ia - ib
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
