package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/church-service/internal/domain"
)

// AccountRepository defines read access to login credentials. Accounts are
// created by registration flows elsewhere; the auth core only reads them and
// records last-login times.
type AccountRepository interface {
	GetByUserID(ctx context.Context, userID string) (*domain.Account, error)
	TouchLastLogin(ctx context.Context, userID string) error
}

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository returns a Postgres-backed implementation.
func NewAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &accountRepository{pool: pool}
}

func (r *accountRepository) GetByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	const query = `
        SELECT id, user_id, display_name, role, passkey_hash, status, last_login_at, created_at, updated_at
        FROM accounts WHERE user_id=$1`

	var account domain.Account
	if err := r.pool.QueryRow(ctx, query, userID).Scan(
		&account.ID,
		&account.UserID,
		&account.DisplayName,
		&account.Role,
		&account.PasskeyHash,
		&account.Status,
		&account.LastLoginAt,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) TouchLastLogin(ctx context.Context, userID string) error {
	const query = `
        UPDATE accounts SET last_login_at=NOW(), updated_at=NOW()
        WHERE user_id=$1`

	cmd, err := r.pool.Exec(ctx, query, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
