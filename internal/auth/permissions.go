package auth

import (
	"context"
	"sync"

	"github.com/spec-kit/church-service/internal/domain"
)

// PermissionSource supplies the role-to-permission table. The Postgres
// repository implements it; tests plug in a literal map.
type PermissionSource interface {
	RolePermissions(ctx context.Context) (map[domain.Role][]domain.Permission, error)
}

// StaticPermissionSource adapts a literal table to PermissionSource.
type StaticPermissionSource map[domain.Role][]domain.Permission

// RolePermissions returns the table as-is.
func (s StaticPermissionSource) RolePermissions(_ context.Context) (map[domain.Role][]domain.Permission, error) {
	return s, nil
}

// PermissionResolver answers role/permission containment queries from an
// in-memory table loaded once at startup. Unknown roles resolve to the empty
// set. Admin satisfies every check regardless of the table contents.
type PermissionResolver struct {
	source PermissionSource

	mu    sync.RWMutex
	table map[domain.Role]map[domain.Permission]struct{}
}

// NewPermissionResolver builds a resolver over the given source. Call Reload
// before first use to populate the table.
func NewPermissionResolver(source PermissionSource) *PermissionResolver {
	return &PermissionResolver{
		source: source,
		table:  make(map[domain.Role]map[domain.Permission]struct{}),
	}
}

// Reload re-reads the role table from the source, replacing the in-memory
// copy atomically. Exposed as the hook for role-table changes.
func (r *PermissionResolver) Reload(ctx context.Context) error {
	raw, err := r.source.RolePermissions(ctx)
	if err != nil {
		return err
	}

	table := make(map[domain.Role]map[domain.Permission]struct{}, len(raw))
	for role, perms := range raw {
		set := make(map[domain.Permission]struct{}, len(perms))
		for _, p := range perms {
			set[p] = struct{}{}
		}
		table[role] = set
	}

	r.mu.Lock()
	r.table = table
	r.mu.Unlock()
	return nil
}

// PermissionsFor returns the configured permission set for a role. Unknown
// roles yield an empty slice.
func (r *PermissionResolver) PermissionsFor(role domain.Role) []domain.Permission {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set, ok := r.table[role]
	if !ok {
		return nil
	}
	perms := make([]domain.Permission, 0, len(set))
	for p := range set {
		perms = append(perms, p)
	}
	return perms
}

// Has reports whether the role holds the permission. Admin passes
// unconditionally.
func (r *PermissionResolver) Has(role domain.Role, perm domain.Permission) bool {
	if role == domain.RoleAdmin {
		return true
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	set, ok := r.table[role]
	if !ok {
		return false
	}
	_, ok = set[perm]
	return ok
}

// HasAny reports whether the role holds at least one of the permissions.
func (r *PermissionResolver) HasAny(role domain.Role, perms ...domain.Permission) bool {
	for _, p := range perms {
		if r.Has(role, p) {
			return true
		}
	}
	return false
}

// HasAll reports whether the role holds every one of the permissions.
func (r *PermissionResolver) HasAll(role domain.Role, perms ...domain.Permission) bool {
	for _, p := range perms {
		if !r.Has(role, p) {
			return false
		}
	}
	return true
}

// DefaultRoleTable is the seed table for the five built-in roles. The
// persisted role_permissions table is the runtime source of truth; migrations
// seed it from this same data.
func DefaultRoleTable() map[domain.Role][]domain.Permission {
	return map[domain.Role][]domain.Permission{
		domain.RoleAdmin: {
			domain.PermManageRoles,
		},
		domain.RolePastor: {
			domain.PermViewMembers,
			domain.PermManageMembers,
			domain.PermManageFamilies,
			domain.PermViewFinancial,
			domain.PermManageEvents,
			domain.PermViewEvents,
			domain.PermManageGroups,
			domain.PermManageVolunteers,
		},
		domain.RoleTreasurer: {
			domain.PermViewMembers,
			domain.PermViewFinancial,
			domain.PermManageBudgets,
			domain.PermRecordExpenses,
			domain.PermApproveExpenses,
			domain.PermManageFiscal,
		},
		domain.RoleSecretary: {
			domain.PermViewMembers,
			domain.PermManageMembers,
			domain.PermManageFamilies,
			domain.PermManageEvents,
			domain.PermViewEvents,
			domain.PermManageGroups,
		},
		domain.RoleMember: {
			domain.PermViewEvents,
		},
	}
}
