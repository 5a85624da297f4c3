// Package policy decides whether a client may read or write a document.
//
// Each document family has its own predicate set (users, events, shifts,
// approvals). A decision depends only on the request: the path, the
// operation, the principal, the existing snapshot and the proposed incoming
// snapshot, plus an injected AdminLookup. There is no state shared between
// evaluations, so an Engine can be used from any number of goroutines.
//
// Anything the engine cannot make sense of (unknown paths, missing
// snapshots, fields of the wrong type) is denied.
package policy

import (
	"slices"

	"go.uber.org/zap"

	"github.com/hamshifts/shift-scheduler/pkg/core/model"
)

// Request is one client operation presented for evaluation
type Request struct {
	Path      string
	Operation Operation
	Principal *model.Principal
	// Existing is the stored document, nil if it does not exist
	Existing model.Document
	// Incoming is the document as it would be after the write, nil for reads
	// and deletes
	Incoming model.Document
}

// Engine evaluates requests against the rule set
type Engine struct {
	admins AdminLookup
	logger *zap.Logger
}

// NewEngine creates an engine. A nil admins lookup knows no admins and a nil
// logger discards output.
func NewEngine(admins AdminLookup, logger *zap.Logger) *Engine {
	if admins == nil {
		admins = AdminFuncs{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{admins: admins, logger: logger}
}

// Decide evaluates req. It never panics on a well formed Go value and
// denies anything malformed.
func (e *Engine) Decide(req Request) Result {
	result := e.decide(req)
	e.logger.Debug("Policy decision",
		zap.String("path", req.Path),
		zap.String("operation", string(req.Operation)),
		zap.String("uid", uidOf(req.Principal)),
		zap.Stringer("decision", result.Decision),
		zap.String("rule", result.Rule))
	return result
}

func (e *Engine) decide(req Request) Result {
	path, err := ParsePath(req.Path)
	if err != nil {
		return deny("malformed-path")
	}

	rc := ruleContext{
		op:       req.Operation,
		uid:      uidOf(req.Principal),
		existing: req.Existing,
		incoming: req.Incoming,
		admins:   e.admins,
	}

	switch p := path.(type) {
	case UserPath:
		return userRules(rc, p)
	case EventPath:
		return eventRules(rc, p)
	case ShiftPath:
		return shiftRules(rc, p)
	case ApprovalPath:
		return approvalRules(rc, p)
	}
	return deny("unknown-path")
}

// ruleContext is the per-request input shared by every predicate
type ruleContext struct {
	op       Operation
	uid      string
	existing model.Document
	incoming model.Document
	admins   AdminLookup
}

func (rc ruleContext) authenticated() bool {
	return rc.uid != ""
}

func (rc ruleContext) isSelf(userID string) bool {
	return rc.authenticated() && rc.uid == userID
}

func (rc ruleContext) isEventAdmin(eventID string) bool {
	return rc.authenticated() && rc.admins.IsAdmin(eventID, rc.uid)
}

func (rc ruleContext) isAnyAdmin() bool {
	return rc.authenticated() && rc.admins.IsAnyAdmin(rc.uid)
}

// changedKeys returns the fields an update touches, ok is false when either
// snapshot is missing
func (rc ruleContext) changedKeys() (keys []string, ok bool) {
	if rc.existing == nil || rc.incoming == nil {
		return nil, false
	}
	return rc.incoming.AffectedKeys(rc.existing), true
}

func uidOf(p *model.Principal) string {
	if !p.Authenticated() {
		return ""
	}
	return p.UID
}

func containsAny(keys []string, fields ...string) bool {
	for _, f := range fields {
		if slices.Contains(keys, f) {
			return true
		}
	}
	return false
}

func onlyKeys(keys []string, allowed ...string) bool {
	for _, k := range keys {
		if !slices.Contains(allowed, k) {
			return false
		}
	}
	return true
}
