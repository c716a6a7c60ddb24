package accounts

import "time"

// Account is a registered (or still unverified) user. OTP is the pending
// verification code; an empty string means no code is outstanding. Verified
// transitions to true exactly once and never reverts.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	OTP          string
	Verified     bool
	CreatedAt    time.Time
}
