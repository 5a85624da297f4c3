package shiftid

import (
	"iter"
	"slices"
	"time"

	"github.com/hamshifts/shift-scheduler/pkg/core/model"
)

// Generator builds the shift universe of an event
type Generator struct {
	// ID computes keys; nil means ComputeShiftID
	ID IDFunc
	// Step is the slot length for continuous ranges; zero means DefaultStep
	Step time.Duration
	// Rule is an optional RRULE replacing the continuous range
	Rule string
}

// Slots returns the slot start times for the event window
func (g Generator) Slots(event model.Event) (iter.Seq[time.Time], error) {
	if g.Rule != "" {
		return GenerateRuleSlots(g.Rule, event.StartTime, event.EndTime)
	}
	return GenerateTimeSlots(event.StartTime, event.EndTime, g.Step), nil
}

// Universe returns one unreserved shift per (slot, band, mode), ordered by
// slot then band then mode as given. Repeated bands or modes are collapsed.
func (g Generator) Universe(event model.Event, bands, modes []string) ([]model.Shift, error) {
	slots, err := g.Slots(event)
	if err != nil {
		return nil, err
	}
	idFn := g.ID
	if idFn == nil {
		idFn = ComputeShiftID
	}

	bands = dedupe(bands)
	modes = dedupe(modes)

	var shifts []model.Shift
	for slot := range slots {
		ms := NormalizeTime(slot)
		at := time.UnixMilli(ms).UTC()
		for _, band := range bands {
			for _, mode := range modes {
				shifts = append(shifts, model.Shift{
					ID:   idFn(ms, band, mode),
					Time: at,
					Band: band,
					Mode: mode,
				})
			}
		}
	}
	return shifts, nil
}

// GenerateShiftUniverse is the cross product of the event's continuous slots
// with bands and modes, keyed by ComputeShiftID
func GenerateShiftUniverse(event model.Event, bands, modes []string, step time.Duration) []model.Shift {
	// a Generator without a Rule cannot fail
	shifts, _ := Generator{Step: step}.Universe(event, bands, modes)
	return shifts
}

func dedupe(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}
