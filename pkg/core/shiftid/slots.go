package shiftid

import (
	"fmt"
	"iter"
	"time"

	"github.com/teambition/rrule-go"
)

// DefaultStep is the slot length used when none is configured
const DefaultStep = 2 * time.Hour

// GenerateTimeSlots yields start, start+step, ... while strictly before end.
// The sequence is lazy and can be ranged over any number of times. Slots keep
// start's precision; callers hash them through NormalizeTime. A non-positive
// step falls back to DefaultStep.
func GenerateTimeSlots(start, end time.Time, step time.Duration) iter.Seq[time.Time] {
	if step <= 0 {
		step = DefaultStep
	}
	return func(yield func(time.Time) bool) {
		for t := start; t.Before(end); t = t.Add(step) {
			if !yield(t) {
				return
			}
		}
	}
}

// GenerateRuleSlots yields the occurrences of an RFC 5545 RRULE (without the
// DTSTART line) anchored at start and clipped to [start, end). It lets an
// event open only recurring operating windows instead of a continuous range.
func GenerateRuleSlots(rule string, start, end time.Time) (iter.Seq[time.Time], error) {
	opt, err := rrule.StrToROption(rule)
	if err != nil {
		return nil, fmt.Errorf("invalid slot rule: %w", err)
	}
	opt.Dtstart = start
	r, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, fmt.Errorf("invalid slot rule: %w", err)
	}

	return func(yield func(time.Time) bool) {
		next := r.Iterator()
		for {
			t, ok := next()
			if !ok || !t.Before(end) {
				return
			}
			if t.Before(start) {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}, nil
}

// SlotCount returns how many slots GenerateTimeSlots yields for the range,
// ceil((end-start)/step), without iterating
func SlotCount(start, end time.Time, step time.Duration) int {
	if step <= 0 {
		step = DefaultStep
	}
	if !start.Before(end) {
		return 0
	}
	span := end.Sub(start)
	return int((span + step - 1) / step)
}
