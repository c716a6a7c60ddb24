package accounts

import (
	"context"
)

// Repository is the single storage abstraction the account service is
// written against. Implementations must enforce email uniqueness and report
// a conflicting insert as shared.ErrorAlreadyExists.
type Repository interface {
	// GetByEmail returns the account with the given email, or
	// shared.ErrorNotFound.
	GetByEmail(ctx context.Context, email string) (*Account, error)

	// Create inserts a new unverified account and fills in its generated ID.
	Create(ctx context.Context, account *Account) (*Account, error)

	// UpdateOTP overwrites the stored verification code.
	UpdateOTP(ctx context.Context, email, otp string) error

	// MarkVerified sets verified = true and clears the stored code.
	MarkVerified(ctx context.Context, email string) error
}
