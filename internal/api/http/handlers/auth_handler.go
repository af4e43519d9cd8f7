package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/church-service/internal/api/dto"
	"github.com/spec-kit/church-service/internal/observability"
	"github.com/spec-kit/church-service/internal/repository"
	"github.com/spec-kit/church-service/internal/service"
	apperrors "github.com/spec-kit/church-service/pkg/util"
)

// AuthHandler exposes login, refresh and logout endpoints.
type AuthHandler struct {
	auth    *service.AuthService
	metrics *observability.Metrics
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, metrics *observability.Metrics) *AuthHandler {
	return &AuthHandler{auth: authService, metrics: metrics}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.UserID == "" || req.Passkey == "" {
		return fiber.NewError(http.StatusBadRequest, "userid and passkey required")
	}

	user, pair, err := h.auth.Login(c.Context(), req.UserID, req.Passkey)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLoginThrottled):
			h.metrics.RecordLogin("throttled")
			return apperrors.NewTooManyRequests("too many failed attempts, try again later")
		case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrAccountInactive):
			h.metrics.RecordLogin("failure")
			return apperrors.NewInvalidCredentials()
		default:
			return apperrors.MapError(err)
		}
	}

	h.metrics.RecordLogin("success")
	return c.JSON(fiber.Map{
		"status":        "ok",
		"access_token":  pair.AccessToken,
		"expires_at":    pair.AccessExpiresAt,
		"refresh_token": pair.RefreshToken,
		"user": dto.UserSummary{
			ID:          user.ID,
			UserID:      user.UserID,
			DisplayName: user.DisplayName,
			Role:        user.Role,
			Permissions: user.Permissions,
		},
	})
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.RefreshToken == "" {
		return fiber.NewError(http.StatusBadRequest, "refresh_token required")
	}

	pair, err := h.auth.Refresh(c.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRefreshReused):
			h.metrics.RecordAuthFailure("refresh_reused")
			return apperrors.NewUnauthorized("refresh token invalid, log in again")
		case errors.Is(err, repository.ErrRefreshExpired):
			h.metrics.RecordAuthFailure("refresh_expired")
			return apperrors.NewUnauthorized("refresh token expired, log in again")
		case errors.Is(err, service.ErrUnauthorized), errors.Is(err, service.ErrAccountInactive):
			h.metrics.RecordAuthFailure("refresh_rejected")
			return apperrors.NewUnauthorized("refresh rejected, log in again")
		default:
			return apperrors.MapError(err)
		}
	}

	return c.JSON(dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		ExpiresAt:    pair.AccessExpiresAt,
		RefreshToken: pair.RefreshToken,
	})
}

// Logout handles POST /auth/logout. Repeated calls are not errors.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req dto.LogoutRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.RefreshToken == "" {
		return fiber.NewError(http.StatusBadRequest, "refresh_token required")
	}

	h.auth.Logout(c.Context(), req.RefreshToken)

	return c.JSON(fiber.Map{"message": "logged out"})
}
