package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/church-service/internal/auth"
	"github.com/spec-kit/church-service/internal/config"
	"github.com/spec-kit/church-service/internal/domain"
	"github.com/spec-kit/church-service/internal/events"
	"github.com/spec-kit/church-service/internal/repository"
)

// Auth flow failure kinds. Callers branch on these with errors.Is; the exact
// cause is never surfaced to the client beyond the kind.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account inactive")
	ErrLoginThrottled     = errors.New("too many failed login attempts")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
)

// UserSummary is the minimal account view returned on login.
type UserSummary struct {
	ID          string
	UserID      string
	DisplayName string
	Role        domain.Role
	Permissions []domain.Permission
}

// TokenPair carries one access/refresh issuance.
type TokenPair struct {
	AccessToken     string
	AccessExpiresAt time.Time
	RefreshToken    string
}

// AuthService orchestrates login, refresh, logout and per-request
// verification. It is the only consumer of the refresh-token ledger.
type AuthService struct {
	accounts   repository.AccountRepository
	tokens     repository.RefreshTokenRepository
	codec      *auth.TokenCodec
	perms      *auth.PermissionResolver
	throttle   *LoginThrottle
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// AuthDependencies encapsulates collaborator requirements for the service.
type AuthDependencies struct {
	AccountRepo      repository.AccountRepository
	RefreshTokenRepo repository.RefreshTokenRepository
	Codec            *auth.TokenCodec
	Permissions      *auth.PermissionResolver
	Throttle         *LoginThrottle
	Dispatcher       events.Dispatcher
	Logger           *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	codec := deps.Codec
	if codec == nil {
		codec = auth.NewTokenCodec(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		accounts:   deps.AccountRepo,
		tokens:     deps.RefreshTokenRepo,
		codec:      codec,
		perms:      deps.Permissions,
		throttle:   deps.Throttle,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// Login authenticates by userid/passkey and issues a fresh token pair. An
// unknown userid and a wrong passkey are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, userID, passkey string) (*UserSummary, *TokenPair, error) {
	if s.throttle.Blocked(ctx, userID) {
		return nil, nil, ErrLoginThrottled
	}

	account, err := s.accounts.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.recordLoginFailure(ctx, userID, "unknown userid")
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if account.Status != domain.AccountStatusActive {
		s.recordLoginFailure(ctx, userID, "account inactive")
		return nil, nil, ErrAccountInactive
	}
	if err := auth.ComparePasskey(account.PasskeyHash, passkey); err != nil {
		s.recordLoginFailure(ctx, userID, "passkey mismatch")
		return nil, nil, ErrInvalidCredentials
	}

	s.throttle.Reset(ctx, userID)

	accessToken, expiresAt, err := s.codec.Encode(account.UserID, account.Role)
	if err != nil {
		return nil, nil, err
	}
	refreshToken, err := s.tokens.Issue(ctx, account.UserID)
	if err != nil {
		return nil, nil, err
	}

	// Last-login bookkeeping is best-effort and never delays the response.
	go func(id string) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.accounts.TouchLastLogin(ctx, id); err != nil {
			s.logger.Warn("last-login update failed", zap.String("user_id", id), zap.Error(err))
		}
	}(account.UserID)

	s.publish(ctx, events.EventLoginSucceeded, account.UserID, nil)

	summary := &UserSummary{
		ID:          account.ID,
		UserID:      account.UserID,
		DisplayName: account.DisplayName,
		Role:        account.Role,
		Permissions: s.perms.PermissionsFor(account.Role),
	}
	pair := &TokenPair{
		AccessToken:     accessToken,
		AccessExpiresAt: expiresAt,
		RefreshToken:    refreshToken,
	}
	return summary, pair, nil
}

// Refresh redeems a refresh token for a new token pair. A reused token has
// already had its whole chain revoked by the ledger; the caller must force
// re-login.
func (s *AuthService) Refresh(ctx context.Context, oldRefresh string) (*TokenPair, error) {
	newRefresh, userID, err := s.tokens.RedeemAndRotate(ctx, oldRefresh)
	if err != nil {
		if errors.Is(err, repository.ErrRefreshReused) {
			s.logger.Warn("refresh token reuse detected", zap.String("user_id", userID))
			s.publish(ctx, events.EventRefreshReuseDetected, userID, events.RefreshReusePayload{ChainRevoked: true})
		}
		return nil, err
	}

	account, err := s.accounts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, ErrUnauthorized
	}
	if account.Status != domain.AccountStatusActive {
		// Suspension outlives any outstanding refresh chain.
		if err := s.tokens.RevokeAllForUser(ctx, userID); err != nil {
			s.logger.Warn("revoke on inactive account failed", zap.String("user_id", userID), zap.Error(err))
		}
		return nil, ErrAccountInactive
	}

	accessToken, expiresAt, err := s.codec.Encode(account.UserID, account.Role)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventTokenRefreshed, userID, nil)

	return &TokenPair{
		AccessToken:     accessToken,
		AccessExpiresAt: expiresAt,
		RefreshToken:    newRefresh,
	}, nil
}

// Logout revokes every refresh token of the presenting user. It is a
// courtesy operation: it always succeeds from the caller's perspective, and
// already-issued access tokens simply expire on their own.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) {
	userID, err := s.tokens.OwnerOf(ctx, refreshToken)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn("logout owner lookup failed", zap.Error(err))
		}
		return
	}
	if err := s.tokens.RevokeAllForUser(ctx, userID); err != nil {
		s.logger.Warn("logout revoke failed", zap.String("user_id", userID), zap.Error(err))
		return
	}
	s.publish(ctx, events.EventLoggedOut, userID, nil)
}

// Verify decodes and validates an access token. Pure computation, no I/O;
// called on essentially every protected request.
func (s *AuthService) Verify(accessToken string) (*auth.Claims, error) {
	return s.codec.Decode(accessToken)
}

// CheckPermission composes Verify with the permission resolver.
func (s *AuthService) CheckPermission(accessToken string, perm domain.Permission) (*auth.Claims, error) {
	claims, err := s.Verify(accessToken)
	if err != nil {
		return nil, ErrUnauthorized
	}
	if !s.perms.Has(claims.Role, perm) {
		return nil, ErrForbidden
	}
	return claims, nil
}

// Permissions exposes the resolver for middleware wiring.
func (s *AuthService) Permissions() *auth.PermissionResolver {
	return s.perms
}

// Codec exposes the token codec for middleware wiring.
func (s *AuthService) Codec() *auth.TokenCodec {
	return s.codec
}

func (s *AuthService) recordLoginFailure(ctx context.Context, userID, reason string) {
	s.throttle.RecordFailure(ctx, userID)
	s.logger.Info("login failed", zap.String("user_id", userID), zap.String("reason", reason))
	s.publish(ctx, events.EventLoginFailed, userID, events.LoginFailedPayload{Reason: reason})
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, userID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
