// Package otp generates the short-lived numeric codes mailed out during
// email verification.
package otp

import (
	"crypto/rand"
	"math/big"
)

// codeRange covers the 6-digit codes 100000..999999, so a code never has
// a leading zero.
var codeRange = big.NewInt(900000)

// Generate returns a random 6-digit numeric code.
func Generate() (string, error) {
	n, err := rand.Int(rand.Reader, codeRange)
	if err != nil {
		return "", err
	}

	return big.NewInt(0).Add(n, big.NewInt(100000)).String(), nil
}
