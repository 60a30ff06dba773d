// Package identity verifies bearer credentials issued by the external identity
// provider and yields the verified email address of the caller.
package identity

import (
	"context"
	"errors"
)

var (
	// ErrInvalidToken is returned for malformed, expired or badly signed credentials
	ErrInvalidToken = errors.New("invalid id token")
	// ErrNoEmail is returned when a valid credential carries no email claim
	ErrNoEmail = errors.New("id token carries no email")
)

// Verifier turns a bearer credential into a verified email address
type Verifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// VerifierFunc adapts a function to the Verifier interface
type VerifierFunc func(ctx context.Context, token string) (string, error)

// Verify calls f(ctx, token)
func (f VerifierFunc) Verify(ctx context.Context, token string) (string, error) {
	return f(ctx, token)
}
