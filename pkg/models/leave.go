package models

import "time"

// LeaveKind values. Imported calendars only carry single-day leave in one of
// these two categories.
const (
	LeaveKindVacation = "vacation"
	LeaveKindPersonal = "personal"
)

// RequestStatus values for leave requests
const (
	RequestStatusApproved   = "approved"
	RequestStatusWaitlisted = "waitlisted"
)

// ImportSource is the provenance tag stamped on every record inserted by the
// calendar import pipeline.
const ImportSource = "calendar_import"

// ExternalLeaveRecord is one row parsed from an external calendar export.
// Names are free text exactly as transcribed in the source system.
type ExternalLeaveRecord struct {
	GivenName           string     `json:"given_name"`
	FamilyName          string     `json:"family_name"`
	EventDate           time.Time  `json:"event_date"`
	LeaveKind           string     `json:"leave_kind" validate:"omitempty,oneof=vacation personal"`
	IsWaitlisted        bool       `json:"is_waitlisted"`
	CreatedAt           time.Time  `json:"created_at"`
	OriginalRequestDate *time.Time `json:"original_request_date,omitempty"`
}

// LeaveRequestInsert is a persistence-ready leave request produced from a
// confirmed preview item.
type LeaveRequestInsert struct {
	MemberID       *string   `db:"member_id" json:"member_id,omitempty"`
	EmployeeNumber int       `db:"employee_number" json:"employee_number"`
	CalendarID     string    `db:"calendar_id" json:"calendar_id"`
	EventDate      time.Time `db:"event_date" json:"event_date"`
	LeaveKind      string    `db:"leave_kind" json:"leave_kind"`
	Status         string    `db:"status" json:"status"`
	RequestedAt    time.Time `db:"requested_at" json:"requested_at"`
	Source         string    `db:"source" json:"source"`
}
