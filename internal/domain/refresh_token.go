package domain

import "time"

// RefreshToken is the persisted record of one step in a rotation chain.
// Only the SHA-256 hash of the opaque token is stored; the plaintext lives
// exclusively with the client. Rows are revoked, never deleted.
type RefreshToken struct {
	ID        string
	UserID    string
	ChainID   string
	TokenHash string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Revoked   bool
	UsedAt    *time.Time
	// ReplacedBy points at the row that superseded this one on rotation.
	ReplacedBy *string
}

// Expired reports whether the token's lifetime has elapsed.
func (t *RefreshToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// Active reports whether the token may still be redeemed.
func (t *RefreshToken) Active(now time.Time) bool {
	return !t.Revoked && !t.Expired(now)
}
