package policy

import (
	"github.com/hamshifts/shift-scheduler/pkg/core/model"
)

// AdminLookup answers admin membership questions for the engine. It is
// injected so rules never talk to a live store.
type AdminLookup interface {
	// IsAdmin reports whether uid is in the admins of eventID
	IsAdmin(eventID, uid string) bool
	// IsAnyAdmin reports whether uid administers at least one event
	IsAnyAdmin(uid string) bool
}

// AdminIndex is an in-memory AdminLookup built from event documents. It is
// immutable after construction and safe for concurrent use.
type AdminIndex struct {
	byEvent map[string]map[string]struct{}
	any     map[string]struct{}
}

// NewAdminIndex indexes the admins of the given events
func NewAdminIndex(events ...model.Event) *AdminIndex {
	idx := &AdminIndex{
		byEvent: make(map[string]map[string]struct{}, len(events)),
		any:     make(map[string]struct{}),
	}
	for _, e := range events {
		set, ok := idx.byEvent[e.ID]
		if !ok {
			set = make(map[string]struct{}, len(e.Admins))
			idx.byEvent[e.ID] = set
		}
		for _, uid := range e.Admins {
			if uid == "" {
				continue
			}
			set[uid] = struct{}{}
			idx.any[uid] = struct{}{}
		}
	}
	return idx
}

func (idx *AdminIndex) IsAdmin(eventID, uid string) bool {
	_, ok := idx.byEvent[eventID][uid]
	return ok
}

func (idx *AdminIndex) IsAnyAdmin(uid string) bool {
	_, ok := idx.any[uid]
	return ok
}

// AdminFuncs adapts plain functions to AdminLookup. A nil function answers
// false.
type AdminFuncs struct {
	Event func(eventID, uid string) bool
	Any   func(uid string) bool
}

func (f AdminFuncs) IsAdmin(eventID, uid string) bool {
	return f.Event != nil && f.Event(eventID, uid)
}

func (f AdminFuncs) IsAnyAdmin(uid string) bool {
	return f.Any != nil && f.Any(uid)
}
