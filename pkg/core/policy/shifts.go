package policy

import "github.com/hamshifts/shift-scheduler/pkg/core/model"

// reservationFields are the only shift fields a client may ever change
var reservationFields = []string{model.FieldReservedBy, model.FieldReservedDetails}

// shiftRules guards events/{eventId}/shifts/{shiftId}. Shifts are created and
// removed by the trusted generator; clients only move the reservation pair.
func shiftRules(rc ruleContext, p ShiftPath) Result {
	if !rc.authenticated() {
		return deny("shifts.unauthenticated")
	}

	switch rc.op {
	case OpRead:
		return allow("shifts.read")
	case OpUpdate:
		return shiftUpdate(rc, p)
	}
	return deny("shifts.write")
}

func shiftUpdate(rc ruleContext, p ShiftPath) Result {
	changed, ok := rc.changedKeys()
	if !ok {
		return deny("shifts.update.missing-document")
	}
	if !onlyKeys(changed, reservationFields...) {
		return deny("shifts.update.immutable-field")
	}

	before, ok := rc.existing.NullableString(model.FieldReservedBy)
	if !ok {
		return deny("shifts.update.malformed")
	}
	after, ok := rc.incoming.NullableString(model.FieldReservedBy)
	if !ok {
		return deny("shifts.update.malformed")
	}

	// admin authority comes from the event in the shift's own path
	if rc.isEventAdmin(p.EventID) {
		return allow("shifts.update.admin")
	}

	switch {
	case after != nil && *after == rc.uid && (before == nil || *before == rc.uid):
		return allow("shifts.update.claim")
	case after == nil && before != nil && *before == rc.uid:
		return allow("shifts.update.cancel")
	}
	return deny("shifts.update")
}
