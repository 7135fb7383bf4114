package models

// MemberStatus values for roster members
const (
	MemberStatusActive   = "active"
	MemberStatusInactive = "inactive"
)

// RosterMember is a read-only snapshot of a roster entry supplied by the
// member store per query. The matching engine never mutates it.
type RosterMember struct {
	ID             *string `db:"id" json:"id,omitempty"`
	EmployeeNumber int     `db:"employee_number" json:"employee_number"`
	GivenName      string  `db:"given_name" json:"given_name"`
	FamilyName     string  `db:"family_name" json:"family_name"`
	Status         string  `db:"status" json:"status"`
	DivisionID     *string `db:"division_id" json:"division_id,omitempty"`
}

// Ref returns the identity reference used for duplicate checks, preferring
// the internal member id over the employee number.
func (m *RosterMember) Ref() MemberRef {
	return MemberRef{
		MemberID:       m.ID,
		EmployeeNumber: m.EmployeeNumber,
	}
}

// MemberRef identifies a member for lookups. MemberID may be nil when only
// the stable employee number is known.
type MemberRef struct {
	MemberID       *string `json:"member_id,omitempty"`
	EmployeeNumber int     `json:"employee_number"`
}
