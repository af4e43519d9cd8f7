package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/church-service/internal/domain"
)

// PermissionRepository loads the persisted role-to-permission table. The
// table is the single source of truth for role grants; migrations seed it
// with the built-in defaults.
type PermissionRepository interface {
	RolePermissions(ctx context.Context) (map[domain.Role][]domain.Permission, error)
}

type permissionRepository struct {
	pool *pgxpool.Pool
}

// NewPermissionRepository returns a Postgres-backed implementation.
func NewPermissionRepository(pool *pgxpool.Pool) PermissionRepository {
	return &permissionRepository{pool: pool}
}

func (r *permissionRepository) RolePermissions(ctx context.Context) (map[domain.Role][]domain.Permission, error) {
	const query = `SELECT role, permission FROM role_permissions ORDER BY role, permission`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	table := make(map[domain.Role][]domain.Permission)
	for rows.Next() {
		var (
			role domain.Role
			perm domain.Permission
		)
		if err := rows.Scan(&role, &perm); err != nil {
			return nil, err
		}
		table[role] = append(table[role], perm)
	}
	return table, rows.Err()
}
