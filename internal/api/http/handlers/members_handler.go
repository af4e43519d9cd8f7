package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/church-service/internal/api/dto"
	"github.com/spec-kit/church-service/internal/domain"
	"github.com/spec-kit/church-service/internal/service"
	apperrors "github.com/spec-kit/church-service/pkg/util"
)

// MembersHandler exposes the congregation directory.
type MembersHandler struct {
	members *service.MemberService
}

// NewMembersHandler constructs handler.
func NewMembersHandler(memberService *service.MemberService) *MembersHandler {
	return &MembersHandler{members: memberService}
}

// List handles GET /members.
func (h *MembersHandler) List(c *fiber.Ctx) error {
	var status *domain.MemberStatus
	if raw := c.Query("status"); raw != "" {
		s := domain.MemberStatus(raw)
		switch s {
		case domain.MemberStatusActive, domain.MemberStatusInactive, domain.MemberStatusVisitor:
			status = &s
		default:
			return apperrors.NewValidationError("unknown status filter", fiber.Map{"status": raw})
		}
	}

	members, err := h.members.List(c.Context(), status, c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return apperrors.MapError(err)
	}

	out := make([]dto.MemberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, dto.FromMember(m))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Get handles GET /members/:id.
func (h *MembersHandler) Get(c *fiber.Ctx) error {
	member, err := h.members.Get(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("member", nil)
		}
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.FromMember(member)})
}
