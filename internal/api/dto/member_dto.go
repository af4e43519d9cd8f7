package dto

import (
	"time"

	"github.com/spec-kit/church-service/internal/domain"
)

// MemberResponse is the directory view of a member.
type MemberResponse struct {
	ID        string              `json:"id"`
	FirstName string              `json:"first_name"`
	LastName  string              `json:"last_name"`
	Email     string              `json:"email"`
	Phone     *string             `json:"phone,omitempty"`
	Status    domain.MemberStatus `json:"status"`
	JoinedAt  *time.Time          `json:"joined_at,omitempty"`
}

// FromMember maps the domain model.
func FromMember(m *domain.Member) MemberResponse {
	return MemberResponse{
		ID:        m.ID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Email:     m.Email,
		Phone:     m.Phone,
		Status:    m.Status,
		JoinedAt:  m.JoinedAt,
	}
}
