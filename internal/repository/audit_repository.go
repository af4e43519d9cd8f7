package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditEntry is one row of the security audit trail. Detail never contains
// secrets or token material, only event metadata.
type AuditEntry struct {
	ID        string
	EventType string
	UserID    *string
	Detail    []byte
	CreatedAt time.Time
}

// AuditRepository persists security events.
type AuditRepository interface {
	Insert(ctx context.Context, entry *AuditEntry) error
}

type auditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository returns a Postgres-backed implementation.
func NewAuditRepository(pool *pgxpool.Pool) AuditRepository {
	return &auditRepository{pool: pool}
}

func (r *auditRepository) Insert(ctx context.Context, entry *AuditEntry) error {
	const query = `
        INSERT INTO audit_log (event_type, user_id, detail)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		entry.EventType,
		entry.UserID,
		entry.Detail,
	).Scan(&entry.ID, &entry.CreatedAt)
}
