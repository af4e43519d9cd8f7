package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/church-service/internal/domain"
	"github.com/spec-kit/church-service/internal/repository"
)

type fakeAccountRepo struct {
	mu        sync.RWMutex
	accounts  map[string]*domain.Account
	lastLogin map[string]int
}

func newFakeAccountRepo(accounts ...*domain.Account) *fakeAccountRepo {
	repo := &fakeAccountRepo{
		accounts:  make(map[string]*domain.Account),
		lastLogin: make(map[string]int),
	}
	for _, a := range accounts {
		repo.accounts[a.UserID] = a
	}
	return repo
}

func (r *fakeAccountRepo) GetByUserID(_ context.Context, userID string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	account, ok := r.accounts[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *account
	return &copied, nil
}

func (r *fakeAccountRepo) TouchLastLogin(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[userID]; !ok {
		return pgx.ErrNoRows
	}
	r.lastLogin[userID]++
	return nil
}

type ledgerRow struct {
	id        string
	userID    string
	chainID   string
	expiresAt time.Time
	revoked   bool
}

// fakeLedger mirrors the Postgres ledger's claim semantics: the revoked flag
// flips under a single lock, so concurrent redeems of one token serialize and
// exactly one observes it active.
type fakeLedger struct {
	mu   sync.Mutex
	rows map[string]*ledgerRow
	ttl  time.Duration
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		rows: make(map[string]*ledgerRow),
		ttl:  24 * time.Hour,
	}
}

func (l *fakeLedger) Issue(_ context.Context, userID string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.issueLocked(userID, uuid.NewString()), nil
}

func (l *fakeLedger) issueLocked(userID, chainID string) string {
	plaintext := uuid.NewString()
	l.rows[plaintext] = &ledgerRow{
		id:        uuid.NewString(),
		userID:    userID,
		chainID:   chainID,
		expiresAt: time.Now().Add(l.ttl),
	}
	return plaintext
}

func (l *fakeLedger) RedeemAndRotate(_ context.Context, plaintext string) (string, string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	row, ok := l.rows[plaintext]
	if !ok {
		return "", "", repository.ErrRefreshReused
	}
	if row.revoked {
		l.revokeChainLocked(row.chainID)
		return "", row.userID, repository.ErrRefreshReused
	}
	if time.Now().After(row.expiresAt) {
		return "", row.userID, repository.ErrRefreshExpired
	}

	row.revoked = true
	return l.issueLocked(row.userID, row.chainID), row.userID, nil
}

func (l *fakeLedger) OwnerOf(_ context.Context, plaintext string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	row, ok := l.rows[plaintext]
	if !ok {
		return "", pgx.ErrNoRows
	}
	return row.userID, nil
}

func (l *fakeLedger) RevokeAllForUser(_ context.Context, userID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, row := range l.rows {
		if row.userID == userID {
			row.revoked = true
		}
	}
	return nil
}

func (l *fakeLedger) revokeChainLocked(chainID string) {
	for _, row := range l.rows {
		if row.chainID == chainID {
			row.revoked = true
		}
	}
}

// expire backdates a token so expiry paths can be exercised.
func (l *fakeLedger) expire(plaintext string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if row, ok := l.rows[plaintext]; ok {
		row.expiresAt = time.Now().Add(-time.Minute)
	}
}
