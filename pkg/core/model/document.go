package model

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"time"
)

// Document is a raw document snapshot as the store presents it to rules:
// field name to value, with nested maps for embedded objects and nil for
// null. A nil Document means the document does not exist.
type Document map[string]any

// Clone returns a shallow copy of d
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	return maps.Clone(d)
}

// String returns the string value of key. ok is false if the field is
// missing or not a string.
func (d Document) String(key string) (string, bool) {
	v, ok := d[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// NullableString returns the value of a field that holds either a string or
// null. A missing field reads as null. ok is false for any other type.
func (d Document) NullableString(key string) (value *string, ok bool) {
	v, present := d[key]
	if !present || v == nil {
		return nil, true
	}
	switch s := v.(type) {
	case string:
		return &s, true
	case *string:
		return s, true
	}
	return nil, false
}

// AffectedKeys returns the sorted set of fields that were added, removed or
// changed going from before to d.
func (d Document) AffectedKeys(before Document) []string {
	var keys []string
	for k, v := range d {
		old, ok := before[k]
		if !ok || !valuesEqual(old, v) {
			keys = append(keys, k)
		}
	}
	for k := range before {
		if _, ok := d[k]; !ok {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}

func valuesEqual(a, b any) bool {
	ta, aIsTime := a.(time.Time)
	tb, bIsTime := b.(time.Time)
	if aIsTime && bIsTime {
		return ta.Equal(tb)
	}
	return reflect.DeepEqual(a, b)
}

// ToDocument renders the shift the way the store would return it
func (s Shift) ToDocument() Document {
	doc := Document{
		FieldTime:            s.Time,
		FieldBand:            s.Band,
		FieldMode:            s.Mode,
		FieldReservedBy:      nil,
		FieldReservedDetails: nil,
	}
	if s.ReservedBy != nil {
		doc[FieldReservedBy] = *s.ReservedBy
	}
	if s.ReservedDetails != nil {
		doc[FieldReservedDetails] = s.ReservedDetails.toMap()
	}
	return doc
}

func (r ReservedDetails) toMap() map[string]any {
	return map[string]any{
		FieldName:       r.Name,
		FieldCallsign:   r.Callsign,
		FieldGridSquare: r.GridSquare,
	}
}

// WithReservation returns a copy of d carrying the given reservation pair
func (d Document) WithReservation(reservedBy *string, details *ReservedDetails) Document {
	out := d.Clone()
	if out == nil {
		out = Document{}
	}
	out[FieldReservedBy] = nil
	out[FieldReservedDetails] = nil
	if reservedBy != nil {
		out[FieldReservedBy] = *reservedBy
	}
	if details != nil {
		out[FieldReservedDetails] = details.toMap()
	}
	return out
}

// ToDocument renders the user document
func (u User) ToDocument() Document {
	doc := Document{
		FieldName:          u.Name,
		FieldCallsign:      u.Callsign,
		FieldGridSquare:    u.GridSquare,
		FieldEmail:         u.Email,
		FieldEmailVerified: u.EmailVerified,
		FieldStatus:        string(u.Status),
		FieldMultiShift:    u.MultiShift,
	}
	if u.Phone != "" {
		doc[FieldPhone] = u.Phone
	}
	if u.DiscordID != "" {
		doc[FieldDiscordID] = u.DiscordID
		doc[FieldDiscordUsername] = u.DiscordUsername
		doc[FieldDiscordAvatar] = u.DiscordAvatar
	}
	return doc
}

// ToDocument renders the approval document
func (a Approval) ToDocument() Document {
	doc := Document{
		FieldStatus:    string(a.Status),
		FieldAppliedAt: a.AppliedAt,
	}
	if a.UserID != "" {
		doc[FieldUserID] = a.UserID
	}
	if a.StatusChangedAt != nil {
		doc[FieldStatusChangedAt] = *a.StatusChangedAt
	}
	if a.ApprovedBy != "" {
		doc[FieldApprovedBy] = a.ApprovedBy
	}
	if a.DeclinedBy != "" {
		doc[FieldDeclinedBy] = a.DeclinedBy
	}
	if a.Notes != "" {
		doc[FieldNotes] = a.Notes
	}
	return doc
}

// Reservation reads the reservation pair back out of a shift document
func (d Document) Reservation() (*string, *ReservedDetails, error) {
	reservedBy, ok := d.NullableString(FieldReservedBy)
	if !ok {
		return nil, nil, fmt.Errorf("field %s is not a string", FieldReservedBy)
	}

	var details *ReservedDetails
	switch v := d[FieldReservedDetails].(type) {
	case nil:
	case map[string]any:
		details = &ReservedDetails{}
		details.Name, _ = v[FieldName].(string)
		details.Callsign, _ = v[FieldCallsign].(string)
		details.GridSquare, _ = v[FieldGridSquare].(string)
	case *ReservedDetails:
		details = v
	case ReservedDetails:
		details = &v
	default:
		return nil, nil, fmt.Errorf("field %s has unexpected type %T", FieldReservedDetails, v)
	}
	return reservedBy, details, nil
}
