// Package shared defines sentinel errors used across the service and
// repository layers. Callers should use errors.Is to match these values.
package shared

import "errors"

var (

	// repository-level errors
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// generic service-level errors
	ErrorInternal   = errors.New("internal error")
	ErrorValidation = errors.New("validation error")

	// account-specific errors
	ErrorAlreadyRegistered  = errors.New("already registered")
	ErrorInvalidOTP         = errors.New("invalid otp")
	ErrorInvalidCredentials = errors.New("invalid email or password")
	ErrorNotVerified        = errors.New("email not verified")

	// auth-specific errors
	ErrorInvalidToken = errors.New("invalid token")
	ErrorTokenExpired = errors.New("token expired")
)
