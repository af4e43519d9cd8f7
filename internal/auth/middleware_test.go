package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/church-service/internal/domain"
	apperrors "github.com/spec-kit/church-service/pkg/util"
)

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
		ok     bool
	}{
		{name: "valid", header: "Bearer abc.def.ghi", want: "abc.def.ghi", ok: true},
		{name: "case insensitive scheme", header: "bearer tok123", want: "tok123", ok: true},
		{name: "missing header", header: "", ok: false},
		{name: "wrong scheme", header: "Basic dXNlcjpwYXNz", ok: false},
		{name: "no token", header: "Bearer ", ok: false},
		{name: "scheme only", header: "Bearer", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractBearerToken(tt.header)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func newTestApp(t *testing.T, codec *TokenCodec) *fiber.App {
	t.Helper()

	resolver := NewPermissionResolver(StaticPermissionSource(DefaultRoleTable()))
	require.NoError(t, resolver.Reload(context.Background()))
	mw := NewMiddleware(codec, resolver)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if err := c.Next(); err != nil {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"code": de.Code})
		}
		return nil
	})

	protected := app.Group("/reports", mw.Authenticate)
	protected.Get("/financial", mw.RequirePermission(domain.PermViewFinancial), func(c *fiber.Ctx) error {
		principal, _ := PrincipalFromContext(c)
		return c.JSON(fiber.Map{"user_id": principal.UserID})
	})
	protected.Get("/roles", mw.RequirePermission(domain.PermManageRoles), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	return app
}

func TestMiddlewareRejectsMissingToken(t *testing.T) {
	app := newTestApp(t, NewTokenCodec("mw-secret", 15))

	req := httptest.NewRequest(http.MethodGet, "/reports/financial", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMiddlewareRejectsBadToken(t *testing.T) {
	app := newTestApp(t, NewTokenCodec("mw-secret", 15))

	req := httptest.NewRequest(http.MethodGet, "/reports/financial", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMiddlewareAllowsPermittedRole(t *testing.T) {
	codec := NewTokenCodec("mw-secret", 15)
	app := newTestApp(t, codec)

	token, _, err := codec.Encode("pastor1", domain.RolePastor)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/reports/financial", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMiddlewareForbidsMissingPermission(t *testing.T) {
	codec := NewTokenCodec("mw-secret", 15)
	app := newTestApp(t, codec)

	token, _, err := codec.Encode("pastor1", domain.RolePastor)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/reports/roles", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestMiddlewareAdminBypass(t *testing.T) {
	codec := NewTokenCodec("mw-secret", 15)
	app := newTestApp(t, codec)

	token, _, err := codec.Encode("admin1", domain.RoleAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/reports/roles", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
