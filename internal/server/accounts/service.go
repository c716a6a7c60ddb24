// Package accounts owns the account verification state machine:
// signup → pending-OTP → verified → authenticated.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"taskpilot/internal/server/auth"
	"taskpilot/internal/server/config"
	"taskpilot/internal/server/otp"
	"taskpilot/internal/shared"
)

// Notifier delivers a verification code to the account's email address.
// Failures surface to the caller and are not retried here.
type Notifier interface {
	SendOTP(ctx context.Context, email, code string) error
}

// SignupOutcome tells the caller which of the two success paths a signup
// took: a brand-new registration or an OTP refresh for a known unverified
// email.
type SignupOutcome int

const (
	SignupRegistered SignupOutcome = iota
	SignupOTPResent
)

type Service struct {
	repo                  Repository
	notifier              Notifier
	jwtSecret             []byte
	tokenValidityDuration time.Duration

	// overridable in tests
	generateOTP func() (string, error)
}

func NewService(repo Repository, notifier Notifier, cfg *config.Config) *Service {
	return &Service{
		repo:                  repo,
		notifier:              notifier,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
		generateOTP:           otp.Generate,
	}
}

// SignUp registers a new account or refreshes the verification code of an
// existing unverified one. Exactly one store write and one mail send happen
// per call. A stored-but-unmailed account is not rolled back: the next
// signup attempt regenerates its code.
func (s *Service) SignUp(ctx context.Context, email, password string) (SignupOutcome, error) {

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, shared.ErrorNotFound) {
		return 0, shared.ErrorInternal
	}

	code, err := s.generateOTP()
	if err != nil {
		return 0, shared.ErrorInternal
	}

	if existing != nil {
		if existing.Verified {
			return 0, shared.ErrorAlreadyRegistered
		}

		if err := s.repo.UpdateOTP(ctx, email, code); err != nil {
			return 0, shared.ErrorInternal
		}
		if err := s.notifier.SendOTP(ctx, email, code); err != nil {
			return 0, shared.ErrorInternal
		}
		return SignupOTPResent, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, shared.ErrorInternal
	}

	account := &Account{
		Email:        email,
		PasswordHash: string(hash),
		OTP:          code,
	}

	if _, err := s.repo.Create(ctx, account); err != nil {
		// a concurrent signup won the insert; the unique index reports it
		if errors.Is(err, shared.ErrorAlreadyExists) {
			return 0, shared.ErrorAlreadyRegistered
		}
		return 0, shared.ErrorInternal
	}

	if err := s.notifier.SendOTP(ctx, email, code); err != nil {
		return 0, shared.ErrorInternal
	}

	return SignupRegistered, nil
}

// VerifyOTP promotes an account to verified when the submitted code matches
// the stored one. A missing account and a wrong code are deliberately
// indistinguishable. The stored code is cleared on success, so repeating
// the call with the same code fails.
func (s *Service) VerifyOTP(ctx context.Context, email, submitted string) error {

	account, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrorNotFound) {
			return shared.ErrorInvalidOTP
		}
		return fmt.Errorf("error searching account: %w", err)
	}

	if account.OTP == "" || account.OTP != submitted {
		return shared.ErrorInvalidOTP
	}

	if err := s.repo.MarkVerified(ctx, email); err != nil {
		return fmt.Errorf("error marking account verified: %w", err)
	}

	return nil
}

// Login checks the password against the stored hash and, for verified
// accounts, issues a signed time-limited token carrying the account ID.
// An unverified account with a correct password fails with
// ErrorNotVerified, distinct from bad credentials.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {

	account, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrorNotFound) {
			return "", shared.ErrorInvalidCredentials
		}
		return "", shared.ErrorInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", shared.ErrorInvalidCredentials
	}

	if !account.Verified {
		return "", shared.ErrorNotVerified
	}

	token, err := auth.GenerateToken(account.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", shared.ErrorInternal
	}

	return token, nil
}
