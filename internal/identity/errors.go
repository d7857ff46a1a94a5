// Package identity proxies authentication to the hosted identity
// provider. Provider responses are folded into a small set of tagged
// errors so the HTTP layer never inspects provider text.
package identity

import "errors"

// Sentinel errors for provider outcomes. Callers branch with errors.Is.
var (
	// ErrAlreadyRegistered means the email already has an account
	ErrAlreadyRegistered = errors.New("identity: email already registered")

	// ErrInvalidCredentials means the email or password is wrong
	ErrInvalidCredentials = errors.New("identity: invalid credentials")

	// ErrUnauthorized means the access token is missing or expired
	ErrUnauthorized = errors.New("identity: unauthorized")

	// ErrTimeout means the provider did not answer in time. Timeouts
	// during registration are retried; everything else is not.
	ErrTimeout = errors.New("identity: provider timeout")

	// ErrUnavailable means the provider is down or the retry budget for
	// a registration ran out
	ErrUnavailable = errors.New("identity: provider unavailable")
)
