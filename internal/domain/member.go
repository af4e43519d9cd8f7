package domain

import "time"

// MemberStatus tracks a member's standing in the congregation.
type MemberStatus string

const (
	MemberStatusActive   MemberStatus = "ACTIVE"
	MemberStatusInactive MemberStatus = "INACTIVE"
	MemberStatusVisitor  MemberStatus = "VISITOR"
)

// Member models an entry in the congregation directory.
type Member struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Phone     *string
	Status    MemberStatus
	JoinedAt  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
