package dto

import (
	"time"

	"github.com/spec-kit/church-service/internal/domain"
)

// LoginRequest payload for POST /auth/login.
type LoginRequest struct {
	UserID  string `json:"userid"`
	Passkey string `json:"passkey"`
}

// RefreshRequest payload for POST /auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// LogoutRequest payload for POST /auth/logout.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// UserSummary is the account view returned on login.
type UserSummary struct {
	ID          string              `json:"id"`
	UserID      string              `json:"userid"`
	DisplayName string              `json:"name"`
	Role        domain.Role         `json:"role"`
	Permissions []domain.Permission `json:"permissions"`
}

// TokenResponse carries one access/refresh issuance.
type TokenResponse struct {
	AccessToken  string    `json:"access_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	RefreshToken string    `json:"refresh_token"`
}
