package accounts

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskpilot/internal/shared"
)

// MemoryRepository is an in-memory Repository used by tests and the
// in-memory repository manager. It enforces the same email uniqueness as
// the Postgres implementation.
type MemoryRepository struct {
	mu      sync.RWMutex
	byEmail map[string]*Account
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byEmail: make(map[string]*Account)}
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.byEmail[email]
	if !ok {
		return nil, shared.ErrorNotFound
	}

	out := *account
	return &out, nil
}

func (r *MemoryRepository) Create(ctx context.Context, account *Account) (*Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[account.Email]; ok {
		return nil, shared.ErrorAlreadyExists
	}

	account.ID = uuid.NewString()
	account.CreatedAt = time.Now()

	stored := *account
	r.byEmail[account.Email] = &stored

	return account, nil
}

func (r *MemoryRepository) UpdateOTP(ctx context.Context, email, otp string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.byEmail[email]
	if !ok {
		return shared.ErrorNotFound
	}

	account.OTP = otp
	return nil
}

func (r *MemoryRepository) MarkVerified(ctx context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.byEmail[email]
	if !ok {
		return shared.ErrorNotFound
	}

	account.Verified = true
	account.OTP = ""
	return nil
}
