package domain

// Role names a bundle of permissions assigned to an account.
type Role string

const (
	RoleAdmin     Role = "Admin"
	RolePastor    Role = "Pastor"
	RoleTreasurer Role = "Treasurer"
	RoleSecretary Role = "Secretary"
	RoleMember    Role = "Member"
)

// Permission is a named capability key checked before mutating data.
type Permission string

const (
	PermViewMembers      Permission = "view_members"
	PermManageMembers    Permission = "manage_members"
	PermManageFamilies   Permission = "manage_families"
	PermViewFinancial    Permission = "view_financial_reports"
	PermManageBudgets    Permission = "manage_budgets"
	PermRecordExpenses   Permission = "record_expenses"
	PermApproveExpenses  Permission = "approve_expenses"
	PermManageEvents     Permission = "manage_events"
	PermViewEvents       Permission = "view_events"
	PermManageGroups     Permission = "manage_groups"
	PermManageVolunteers Permission = "manage_volunteers"
	PermManageFiscal     Permission = "manage_fiscal_years"
	PermManageRoles      Permission = "manage_roles"
)
