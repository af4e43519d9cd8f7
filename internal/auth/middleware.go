package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/church-service/internal/domain"
	apperrors "github.com/spec-kit/church-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller as carried by the access
// token. No database lookup happens per request; the claims are the identity.
type Principal struct {
	UserID string
	Role   domain.Role
	Claims *Claims
}

// Middleware validates bearer tokens and enforces permissions on protected
// routes.
type Middleware struct {
	codec *TokenCodec
	perms *PermissionResolver
}

// NewMiddleware constructs middleware.
func NewMiddleware(codec *TokenCodec, perms *PermissionResolver) *Middleware {
	return &Middleware{codec: codec, perms: perms}
}

// Authenticate verifies the bearer token and stores the principal in request
// locals. Verification is pure signature+expiry checking, no I/O.
func (m *Middleware) Authenticate(c *fiber.Ctx) error {
	token, ok := ExtractBearerToken(c.Get("Authorization"))
	if !ok {
		return apperrors.NewUnauthorized("missing bearer token")
	}

	claims, err := m.codec.Decode(token)
	if err != nil {
		return apperrors.NewUnauthorized("invalid or expired token")
	}

	c.Locals(principalKey, &Principal{
		UserID: claims.Subject,
		Role:   claims.Role,
		Claims: claims,
	})
	return c.Next()
}

// RequirePermission gates a route on a single permission. Must run after
// Authenticate.
func (m *Middleware) RequirePermission(perm domain.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !m.perms.Has(principal.Role, perm) {
			return apperrors.NewForbidden("insufficient permission")
		}
		return c.Next()
	}
}

// RequireAnyPermission gates a route on holding at least one of the listed
// permissions.
func (m *Middleware) RequireAnyPermission(perms ...domain.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !m.perms.HasAny(principal.Role, perms...) {
			return apperrors.NewForbidden("insufficient permission")
		}
		return c.Next()
	}
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

// ExtractBearerToken parses an Authorization header value. A missing or
// malformed header yields ok=false, not an error; whether a token is required
// is the caller's decision.
func ExtractBearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}
