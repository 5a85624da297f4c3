package policy

import (
	"fmt"
	"strings"
)

// Decision is the outcome of evaluating a request
type Decision int

const (
	// Deny means the operation is rejected
	Deny Decision = iota
	// Allow means the operation may proceed
	Allow
)

// String returns "allow" or "deny"
func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// Operation is the kind of access a client attempts
type Operation string

const (
	OpRead   Operation = "read"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// ParseOperation accepts read, get, list, create, update and delete
func ParseOperation(s string) (Operation, error) {
	switch strings.ToLower(s) {
	case "read", "get", "list":
		return OpRead, nil
	case "create":
		return OpCreate, nil
	case "update":
		return OpUpdate, nil
	case "delete":
		return OpDelete, nil
	}
	return "", fmt.Errorf("unknown operation %q", s)
}

// Result carries the decision and the name of the rule that produced it.
// Rule is for logs and debugging only; callers must branch on Decision.
type Result struct {
	Decision Decision
	Rule     string
}

// Allowed reports whether the result permits the operation
func (r Result) Allowed() bool {
	return r.Decision == Allow
}

func allow(rule string) Result {
	return Result{Decision: Allow, Rule: rule}
}

func deny(rule string) Result {
	return Result{Decision: Deny, Rule: rule}
}
