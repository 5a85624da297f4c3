package policy

import "github.com/hamshifts/shift-scheduler/pkg/core/model"

// userAdminFields may only be changed by an event admin
var userAdminFields = []string{model.FieldStatus, model.FieldMultiShift}

// userRules guards users/{userId}. Any event admin may read and edit any user
// because approving a participant needs their profile.
func userRules(rc ruleContext, p UserPath) Result {
	if !rc.authenticated() {
		return deny("users.unauthenticated")
	}

	switch rc.op {
	case OpRead:
		if rc.isSelf(p.UserID) {
			return allow("users.read.self")
		}
		if rc.isAnyAdmin() {
			return allow("users.read.admin")
		}
		return deny("users.read")

	case OpCreate:
		if rc.incoming == nil {
			return deny("users.create.missing-document")
		}
		if !rc.isSelf(p.UserID) {
			return deny("users.create")
		}
		if !selfCreatable(rc.incoming) {
			return deny("users.create.admin-field")
		}
		return allow("users.create.self")

	case OpUpdate:
		changed, ok := rc.changedKeys()
		if !ok {
			return deny("users.update.missing-document")
		}
		if rc.isSelf(p.UserID) && !containsAny(changed, userAdminFields...) {
			return allow("users.update.self")
		}
		if rc.isAnyAdmin() {
			return allow("users.update.admin")
		}
		if rc.isSelf(p.UserID) {
			return deny("users.update.admin-field")
		}
		return deny("users.update")

	case OpDelete:
		if rc.isSelf(p.UserID) {
			return allow("users.delete.self")
		}
		return deny("users.delete")
	}
	return deny("users.unknown-operation")
}

// selfCreatable reports whether a new user document leaves the admin-only
// fields at their defaults: status absent or Provisional, multiShift absent
// or false.
func selfCreatable(doc model.Document) bool {
	if v, present := doc[model.FieldStatus]; present && v != nil {
		status, ok := v.(string)
		if !ok || model.UserStatus(status) != model.UserStatusProvisional {
			return false
		}
	}
	if v, present := doc[model.FieldMultiShift]; present && v != nil {
		multiShift, ok := v.(bool)
		if !ok || multiShift {
			return false
		}
	}
	return true
}
