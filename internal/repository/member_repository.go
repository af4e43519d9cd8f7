package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/church-service/internal/domain"
)

// MemberRepository defines read access to the congregation directory.
type MemberRepository interface {
	List(ctx context.Context, status *domain.MemberStatus, limit, offset int) ([]*domain.Member, error)
	GetByID(ctx context.Context, id string) (*domain.Member, error)
}

type memberRepository struct {
	pool *pgxpool.Pool
}

// NewMemberRepository returns a Postgres-backed implementation.
func NewMemberRepository(pool *pgxpool.Pool) MemberRepository {
	return &memberRepository{pool: pool}
}

func (r *memberRepository) List(ctx context.Context, status *domain.MemberStatus, limit, offset int) ([]*domain.Member, error) {
	const query = `
        SELECT id, first_name, last_name, email, phone, status, joined_at, created_at, updated_at
        FROM members
        WHERE ($1::text IS NULL OR status=$1)
        ORDER BY last_name, first_name
        LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*domain.Member
	for rows.Next() {
		var m domain.Member
		if err := rows.Scan(
			&m.ID,
			&m.FirstName,
			&m.LastName,
			&m.Email,
			&m.Phone,
			&m.Status,
			&m.JoinedAt,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		members = append(members, &m)
	}
	return members, rows.Err()
}

func (r *memberRepository) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	const query = `
        SELECT id, first_name, last_name, email, phone, status, joined_at, created_at, updated_at
        FROM members WHERE id=$1`

	var m domain.Member
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&m.ID,
		&m.FirstName,
		&m.LastName,
		&m.Email,
		&m.Phone,
		&m.Status,
		&m.JoinedAt,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &m, nil
}
