package service

import (
	"context"

	"github.com/spec-kit/church-service/internal/domain"
	"github.com/spec-kit/church-service/internal/repository"
)

// MemberService exposes the congregation directory. It is a representative
// consumer of the auth contracts: every route through it sits behind the
// bearer middleware and a permission check.
type MemberService struct {
	members repository.MemberRepository
}

// NewMemberService builds the service.
func NewMemberService(members repository.MemberRepository) *MemberService {
	return &MemberService{members: members}
}

// List returns directory entries, optionally filtered by status.
func (s *MemberService) List(ctx context.Context, status *domain.MemberStatus, limit, offset int) ([]*domain.Member, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.members.List(ctx, status, limit, offset)
}

// Get returns a single directory entry.
func (s *MemberService) Get(ctx context.Context, id string) (*domain.Member, error) {
	return s.members.GetByID(ctx, id)
}
