// Package auth holds the shared-secret bearer token check
package auth

import (
	"crypto/subtle"
	"errors"
)

// Scheme is the literal prefix expected in the Authorization header
const Scheme = "Bearer"

var (
	// ErrUnauthorized is returned for an absent, empty or mismatched credential
	ErrUnauthorized = errors.New("unauthorized")

	// ErrMissingSecret is returned when the authenticator is built without a secret
	ErrMissingSecret = errors.New("authenticator secret must not be empty")
)

// Authenticator compares a presented Authorization header with "Bearer <secret>"
type Authenticator struct {
	expected []byte
}

// NewAuthenticator creates an authenticator for secret.
// An empty secret is refused so a blank header can never pass.
func NewAuthenticator(secret string) (*Authenticator, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}

	return &Authenticator{
		expected: []byte(Scheme + " " + secret),
	}, nil
}

// Verify returns nil only when header equals "Bearer <secret>" byte for byte
func (a *Authenticator) Verify(header string) error {
	if header == "" {
		return ErrUnauthorized
	}

	if subtle.ConstantTimeCompare([]byte(header), a.expected) != 1 {
		return ErrUnauthorized
	}

	return nil
}
