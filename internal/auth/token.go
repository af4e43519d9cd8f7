package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/church-service/internal/domain"
)

// Decode failure kinds. Callers branch on these with errors.Is.
var (
	ErrInvalidFormat    = errors.New("token format invalid")
	ErrInvalidSignature = errors.New("token signature invalid")
	ErrExpired          = errors.New("token expired")
)

// TokenCodec signs and verifies self-contained access tokens. The signing
// secret is injected at construction and never read from process-global state.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenCodec builds a codec. ttlMinutes may be negative in tests to mint
// already-expired tokens.
func NewTokenCodec(secret string, ttlMinutes int) *TokenCodec {
	if ttlMinutes == 0 {
		ttlMinutes = 20
	}
	return &TokenCodec{secret: []byte(secret), ttl: time.Duration(ttlMinutes) * time.Minute}
}

// Claims is the access-token payload: subject (user id) and role plus the
// standard issued-at/expiry fields.
type Claims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Encode signs a claim set for the subject and returns the compact token
// together with its expiry.
func (c *TokenCodec) Encode(userID string, role domain.Role) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(c.ttl)
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Decode verifies the signature and expiry and returns the claims. Expiry is
// reported ahead of signature problems so a stale token reads as stale, not
// tampered.
func (c *TokenCodec) Decode(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidSignature
		}
		return c.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, ErrInvalidFormat
		}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidFormat
	}
	if claims.Subject == "" {
		return nil, ErrInvalidFormat
	}
	return claims, nil
}
