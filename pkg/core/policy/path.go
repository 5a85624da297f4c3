package policy

import (
	"fmt"
	"strings"

	"github.com/hamshifts/shift-scheduler/pkg/core/model"
)

// Path is a decoded document path. It is one of UserPath, EventPath,
// ShiftPath or ApprovalPath.
type Path interface {
	String() string
	isPath()
}

// UserPath is users/{UserID}
type UserPath struct{ UserID string }

// EventPath is events/{EventID}
type EventPath struct{ EventID string }

// ShiftPath is events/{EventID}/shifts/{ShiftID}
type ShiftPath struct{ EventID, ShiftID string }

// ApprovalPath is events/{EventID}/approvals/{UserID}
type ApprovalPath struct{ EventID, UserID string }

func (UserPath) isPath()     {}
func (EventPath) isPath()    {}
func (ShiftPath) isPath()    {}
func (ApprovalPath) isPath() {}

func (p UserPath) String() string { return model.CollectionUsers + "/" + p.UserID }
func (p EventPath) String() string {
	return model.CollectionEvents + "/" + p.EventID
}
func (p ShiftPath) String() string {
	return model.CollectionEvents + "/" + p.EventID + "/" + model.CollectionShifts + "/" + p.ShiftID
}
func (p ApprovalPath) String() string {
	return model.CollectionEvents + "/" + p.EventID + "/" + model.CollectionApprovals + "/" + p.UserID
}

// documentsPrefix is stripped so fully qualified resource names parse too
const documentsPrefix = "databases/(default)/documents/"

// ParsePath decodes a slash separated document path
func ParsePath(raw string) (Path, error) {
	trimmed := strings.Trim(raw, "/")
	trimmed = strings.TrimPrefix(trimmed, documentsPrefix)
	segments := strings.Split(trimmed, "/")
	for _, s := range segments {
		if s == "" {
			return nil, fmt.Errorf("invalid document path %q: empty segment", raw)
		}
	}

	switch {
	case len(segments) == 2 && segments[0] == model.CollectionUsers:
		return UserPath{UserID: segments[1]}, nil
	case len(segments) == 2 && segments[0] == model.CollectionEvents:
		return EventPath{EventID: segments[1]}, nil
	case len(segments) == 4 && segments[0] == model.CollectionEvents && segments[2] == model.CollectionShifts:
		return ShiftPath{EventID: segments[1], ShiftID: segments[3]}, nil
	case len(segments) == 4 && segments[0] == model.CollectionEvents && segments[2] == model.CollectionApprovals:
		return ApprovalPath{EventID: segments[1], UserID: segments[3]}, nil
	}
	return nil, fmt.Errorf("invalid document path %q: no matching collection", raw)
}
