package model

import (
	"slices"
	"time"
)

// UserStatus is the legacy global participation status held on a user document.
// Per-event participation is tracked by Approval documents.
type UserStatus string

const (
	UserStatusProvisional UserStatus = "Provisional"
	UserStatusApplied     UserStatus = "Applied"
	UserStatusApproved    UserStatus = "Approved"
	UserStatusDeclined    UserStatus = "Declined"
)

// ApprovalStatus is the state of a per-event application
type ApprovalStatus string

const (
	ApprovalApplied  ApprovalStatus = "Applied"
	ApprovalApproved ApprovalStatus = "Approved"
	ApprovalDeclined ApprovalStatus = "Declined"
)

// Valid reports whether s is one of the known approval states
func (s ApprovalStatus) Valid() bool {
	switch s {
	case ApprovalApplied, ApprovalApproved, ApprovalDeclined:
		return true
	}
	return false
}

// Document field names as stored in the document database
const (
	FieldName                = "name"
	FieldCallsign            = "callsign"
	FieldGridSquare          = "gridSquare"
	FieldPhone               = "phone"
	FieldEmail               = "email"
	FieldEmailVerified       = "emailVerified"
	FieldStatus              = "status"
	FieldMultiShift          = "multiShift"
	FieldDiscordID           = "discordId"
	FieldDiscordUsername     = "discordUsername"
	FieldDiscordAvatar       = "discordAvatar"
	FieldTime                = "time"
	FieldBand                = "band"
	FieldMode                = "mode"
	FieldReservedBy          = "reservedBy"
	FieldReservedDetails     = "reservedDetails"
	FieldAppliedAt           = "appliedAt"
	FieldStatusChangedAt     = "statusChangedAt"
	FieldApprovedBy          = "approvedBy"
	FieldDeclinedBy          = "declinedBy"
	FieldUserID              = "userId"
	FieldNotes               = "notes"
	FieldSlug                = "slug"
	FieldCoordinatorName     = "coordinatorName"
	FieldCoordinatorCallsign = "coordinatorCallsign"
	FieldAdmins              = "admins"
	FieldStartTime           = "startTime"
	FieldEndTime             = "endTime"
	FieldTimeZoneID          = "timeZoneId"
)

// Collection names of the document hierarchy
const (
	CollectionUsers     = "users"
	CollectionEvents    = "events"
	CollectionShifts    = "shifts"
	CollectionApprovals = "approvals"
)

// User is stored at users/{userId}; the id is the auth provider UID
type User struct {
	ID              string     `firestore:"-" json:"id"`
	Name            string     `firestore:"name" json:"name"`
	Callsign        string     `firestore:"callsign" json:"callsign"`
	GridSquare      string     `firestore:"gridSquare" json:"gridSquare"`
	Phone           string     `firestore:"phone,omitempty" json:"phone,omitempty"`
	Email           string     `firestore:"email" json:"email"`
	EmailVerified   bool       `firestore:"emailVerified" json:"emailVerified"`
	Status          UserStatus `firestore:"status" json:"status"`
	MultiShift      bool       `firestore:"multiShift" json:"multiShift"`
	DiscordID       string     `firestore:"discordId,omitempty" json:"discordId,omitempty"`
	DiscordUsername string     `firestore:"discordUsername,omitempty" json:"discordUsername,omitempty"`
	DiscordAvatar   string     `firestore:"discordAvatar,omitempty" json:"discordAvatar,omitempty"`
}

// Event is stored at events/{eventId}. Admins is the only source of admin
// authority for the event and grants nothing in any other event.
type Event struct {
	ID                  string    `firestore:"-" json:"id" validate:"required"`
	Name                string    `firestore:"name" json:"name" validate:"required"`
	Slug                string    `firestore:"slug" json:"slug"`
	CoordinatorName     string    `firestore:"coordinatorName" json:"coordinatorName"`
	CoordinatorCallsign string    `firestore:"coordinatorCallsign" json:"coordinatorCallsign"`
	Admins              []string  `firestore:"admins" json:"admins" validate:"dive,required"`
	StartTime           time.Time `firestore:"startTime" json:"startTime" validate:"required"`
	EndTime             time.Time `firestore:"endTime" json:"endTime" validate:"required,gtfield=StartTime"`
	TimeZoneID          string    `firestore:"timeZoneId" json:"timeZoneId"`
}

// IsAdmin reports whether uid is listed in the event's admins
func (e *Event) IsAdmin(uid string) bool {
	if uid == "" {
		return false
	}
	return slices.Contains(e.Admins, uid)
}

// ReservedDetails is a snapshot of the reserving user's public profile
type ReservedDetails struct {
	Name       string `firestore:"name" json:"name"`
	Callsign   string `firestore:"callsign" json:"callsign"`
	GridSquare string `firestore:"gridSquare" json:"gridSquare"`
}

// DetailsFor snapshots the public fields of a user
func DetailsFor(u User) *ReservedDetails {
	return &ReservedDetails{
		Name:       u.Name,
		Callsign:   u.Callsign,
		GridSquare: u.GridSquare,
	}
}

// Shift is stored at events/{eventId}/shifts/{shiftId}. The id is derived
// from (time, band, mode) so regenerating a slot always addresses the same
// document.
type Shift struct {
	ID              string           `firestore:"-" json:"id" validate:"required"`
	Time            time.Time        `firestore:"time" json:"time" validate:"required"`
	Band            string           `firestore:"band" json:"band" validate:"required,band"`
	Mode            string           `firestore:"mode" json:"mode" validate:"required,mode"`
	ReservedBy      *string          `firestore:"reservedBy" json:"reservedBy"`
	ReservedDetails *ReservedDetails `firestore:"reservedDetails" json:"reservedDetails"`
}

// Reserved reports whether anyone holds the shift
func (s *Shift) Reserved() bool {
	return s.ReservedBy != nil
}

// Approval is stored at events/{eventId}/approvals/{userId}
type Approval struct {
	UserID          string         `firestore:"userId" json:"userId"`
	Status          ApprovalStatus `firestore:"status" json:"status"`
	AppliedAt       time.Time      `firestore:"appliedAt" json:"appliedAt"`
	StatusChangedAt *time.Time     `firestore:"statusChangedAt,omitempty" json:"statusChangedAt,omitempty"`
	ApprovedBy      string         `firestore:"approvedBy,omitempty" json:"approvedBy,omitempty"`
	DeclinedBy      string         `firestore:"declinedBy,omitempty" json:"declinedBy,omitempty"`
	Notes           string         `firestore:"notes,omitempty" json:"notes,omitempty"`
}

// Principal is the authenticated identity behind a client request
type Principal struct {
	UID string
}

// Authenticated reports whether p identifies a signed-in user
func (p *Principal) Authenticated() bool {
	return p != nil && p.UID != ""
}
