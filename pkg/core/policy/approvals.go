package policy

import "github.com/hamshifts/shift-scheduler/pkg/core/model"

var (
	// approvalProtectedFields cannot be changed by the applicant
	approvalProtectedFields = []string{
		model.FieldStatus,
		model.FieldApprovedBy,
		model.FieldDeclinedBy,
		model.FieldStatusChangedAt,
		model.FieldUserID,
	}
	// approvalAdminFields are what an event admin may change when deciding
	approvalAdminFields = []string{
		model.FieldStatus,
		model.FieldApprovedBy,
		model.FieldDeclinedBy,
		model.FieldStatusChangedAt,
		model.FieldNotes,
	}
)

// approvalRules guards events/{eventId}/approvals/{userId}
func approvalRules(rc ruleContext, p ApprovalPath) Result {
	if !rc.authenticated() {
		return deny("approvals.unauthenticated")
	}

	switch rc.op {
	case OpRead:
		if rc.isSelf(p.UserID) {
			return allow("approvals.read.self")
		}
		if rc.isEventAdmin(p.EventID) {
			return allow("approvals.read.admin")
		}
		return deny("approvals.read")

	case OpCreate:
		return approvalCreate(rc, p)

	case OpUpdate:
		return approvalUpdate(rc, p)

	case OpDelete:
		if rc.isSelf(p.UserID) {
			return allow("approvals.delete.self")
		}
		return deny("approvals.delete")
	}
	return deny("approvals.unknown-operation")
}

func approvalCreate(rc ruleContext, p ApprovalPath) Result {
	if rc.incoming == nil {
		return deny("approvals.create.missing-document")
	}
	if !rc.isSelf(p.UserID) {
		return deny("approvals.create.not-self")
	}
	if status, ok := rc.incoming.String(model.FieldStatus); !ok || model.ApprovalStatus(status) != model.ApprovalApplied {
		return deny("approvals.create.status")
	}
	if v, present := rc.incoming[model.FieldUserID]; present && v != nil {
		if userID, ok := v.(string); !ok || userID != rc.uid {
			return deny("approvals.create.user-id")
		}
	}
	return allow("approvals.create.self")
}

func approvalUpdate(rc ruleContext, p ApprovalPath) Result {
	changed, ok := rc.changedKeys()
	if !ok {
		return deny("approvals.update.missing-document")
	}

	if rc.isSelf(p.UserID) && !containsAny(changed, approvalProtectedFields...) {
		return allow("approvals.update.self")
	}

	if rc.isEventAdmin(p.EventID) {
		if !onlyKeys(changed, approvalAdminFields...) {
			return deny("approvals.update.admin-field")
		}
		if containsAny(changed, model.FieldStatus) {
			status, ok := rc.incoming.String(model.FieldStatus)
			if !ok || !adminSettable(model.ApprovalStatus(status)) {
				return deny("approvals.update.status")
			}
		}
		return allow("approvals.update.admin")
	}

	if rc.isSelf(p.UserID) {
		return deny("approvals.update.protected-field")
	}
	return deny("approvals.update")
}

// adminSettable reports whether an admin may move an approval to status.
// Applied is only ever set by the applicant on create.
func adminSettable(status model.ApprovalStatus) bool {
	return status == model.ApprovalApproved || status == model.ApprovalDeclined
}
