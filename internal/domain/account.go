package domain

import "time"

// AccountStatus represents lifecycle states for a login account.
type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "ACTIVE"
	AccountStatusSuspended AccountStatus = "SUSPENDED"
)

// Account is the credential record backing a login. Accounts are created by
// member-registration flows; the auth core only reads them, apart from
// last-login bookkeeping.
type Account struct {
	ID          string
	UserID      string
	DisplayName string
	Role        Role
	PasskeyHash string
	Status      AccountStatus
	LastLoginAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
