package repository

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/church-service/internal/domain"
)

// Ledger failure kinds.
var (
	// ErrRefreshReused covers both unknown tokens and tokens presented again
	// after rotation or revocation. A reused token is a security signal; the
	// ledger revokes the whole chain before reporting it.
	ErrRefreshReused = errors.New("refresh token invalid or already used")
	// ErrRefreshExpired marks a token whose lifetime elapsed before redemption.
	ErrRefreshExpired = errors.New("refresh token expired")
)

// RefreshTokenRepository is the durable ledger of refresh-token issuance and
// revocation. Rows are never deleted; revocation is the terminal state.
type RefreshTokenRepository interface {
	// Issue mints a new opaque token for the user, starting a fresh rotation
	// chain, and returns the plaintext. Only a hash is persisted.
	Issue(ctx context.Context, userID string) (string, error)
	// RedeemAndRotate atomically revokes the presented token and issues its
	// replacement on the same chain. Exactly one of two concurrent calls with
	// the same token can succeed. Returns the owning user id when the token
	// row was located, even on failure, so callers can audit the attempt.
	RedeemAndRotate(ctx context.Context, plaintext string) (newToken string, userID string, err error)
	// OwnerOf resolves the owning user of a token regardless of its state.
	OwnerOf(ctx context.Context, plaintext string) (string, error)
	// RevokeAllForUser marks every active token for the user revoked.
	RevokeAllForUser(ctx context.Context, userID string) error
}

type refreshTokenRepository struct {
	pool *pgxpool.Pool
	ttl  time.Duration
}

// NewRefreshTokenRepository returns a Postgres-backed ledger. ttlDays bounds
// the lifetime of issued tokens.
func NewRefreshTokenRepository(pool *pgxpool.Pool, ttlDays int) RefreshTokenRepository {
	if ttlDays <= 0 {
		ttlDays = 30
	}
	return &refreshTokenRepository{pool: pool, ttl: time.Duration(ttlDays) * 24 * time.Hour}
}

func (r *refreshTokenRepository) Issue(ctx context.Context, userID string) (string, error) {
	plaintext, hash, err := newOpaqueToken()
	if err != nil {
		return "", err
	}

	const query = `
        INSERT INTO refresh_tokens (user_id, chain_id, token_hash, expires_at)
        VALUES ($1, $2, $3, $4)`

	if _, err := r.pool.Exec(ctx, query, userID, uuid.NewString(), hash, time.Now().Add(r.ttl)); err != nil {
		return "", err
	}
	return plaintext, nil
}

func (r *refreshTokenRepository) RedeemAndRotate(ctx context.Context, plaintext string) (string, string, error) {
	hash := hashToken(plaintext)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return "", "", err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	// The conditional update is the atomic claim: of two concurrent calls
	// presenting the same token, only one observes revoked=false.
	const redeem = `
        UPDATE refresh_tokens SET revoked=TRUE, used_at=NOW()
        WHERE token_hash=$1 AND NOT revoked AND expires_at > NOW()
        RETURNING id, user_id, chain_id`

	var oldID, userID, chainID string
	err = tx.QueryRow(ctx, redeem, hash).Scan(&oldID, &userID, &chainID)
	if errors.Is(err, pgx.ErrNoRows) {
		return r.classifyFailedRedeem(ctx, tx, hash)
	}
	if err != nil {
		return "", "", err
	}

	newPlaintext, newHash, err := newOpaqueToken()
	if err != nil {
		return "", "", err
	}

	const chain = `
        INSERT INTO refresh_tokens (user_id, chain_id, token_hash, expires_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id`

	var newID string
	if err := tx.QueryRow(ctx, chain, userID, chainID, newHash, time.Now().Add(r.ttl)).Scan(&newID); err != nil {
		return "", "", err
	}

	const link = `UPDATE refresh_tokens SET replaced_by=$1 WHERE id=$2`
	if _, err := tx.Exec(ctx, link, newID, oldID); err != nil {
		return "", "", err
	}

	if err := tx.Commit(ctx); err != nil {
		return "", "", err
	}
	return newPlaintext, userID, nil
}

// classifyFailedRedeem distinguishes expiry from reuse and, on reuse, revokes
// the token's whole chain so a stolen chain dies everywhere at once.
func (r *refreshTokenRepository) classifyFailedRedeem(ctx context.Context, tx pgx.Tx, hash string) (string, string, error) {
	const probe = `
        SELECT user_id, chain_id, revoked, expires_at
        FROM refresh_tokens WHERE token_hash=$1`

	var token domain.RefreshToken
	err := tx.QueryRow(ctx, probe, hash).Scan(&token.UserID, &token.ChainID, &token.Revoked, &token.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", "", ErrRefreshReused
	}
	if err != nil {
		return "", "", err
	}

	if token.Revoked {
		const revokeChain = `UPDATE refresh_tokens SET revoked=TRUE WHERE chain_id=$1 AND NOT revoked`
		if _, err := tx.Exec(ctx, revokeChain, token.ChainID); err != nil {
			return "", token.UserID, err
		}
		if err := tx.Commit(ctx); err != nil {
			return "", token.UserID, err
		}
		return "", token.UserID, ErrRefreshReused
	}
	if token.Expired(time.Now()) {
		return "", token.UserID, ErrRefreshExpired
	}
	return "", token.UserID, ErrRefreshReused
}

func (r *refreshTokenRepository) OwnerOf(ctx context.Context, plaintext string) (string, error) {
	const query = `SELECT user_id FROM refresh_tokens WHERE token_hash=$1`

	var userID string
	if err := r.pool.QueryRow(ctx, query, hashToken(plaintext)).Scan(&userID); err != nil {
		return "", err
	}
	return userID, nil
}

func (r *refreshTokenRepository) RevokeAllForUser(ctx context.Context, userID string) error {
	const query = `UPDATE refresh_tokens SET revoked=TRUE WHERE user_id=$1 AND NOT revoked`
	_, err := r.pool.Exec(ctx, query, userID)
	return err
}

// newOpaqueToken generates a 256-bit random token and its storage hash.
func newOpaqueToken() (plaintext, hash string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	plaintext = base64.RawURLEncoding.EncodeToString(buf)
	return plaintext, hashToken(plaintext), nil
}

func hashToken(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}
