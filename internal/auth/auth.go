// Package auth maps bearer tokens to user records. The engine only consumes
// the Verifier interface; token formats are an implementation detail of the
// host process.
package auth

import (
	"context"
	"errors"

	"github.com/hanpama/shopgraph/internal/store"
)

// ErrInvalidToken indicates the token was present but could not be mapped to
// a user.
var ErrInvalidToken = errors.New("invalid token")

// Verifier resolves a bearer token to a user record. Implementations must be
// stateless pure lookups and safe for concurrent use.
type Verifier interface {
	Verify(ctx context.Context, token string) (*store.User, error)
}

// StaticVerifier maps fixed token strings to user ids in the store. Intended
// for development and tests.
type StaticVerifier struct {
	store  *store.Store
	tokens map[string]int
}

// NewStaticVerifier creates a verifier over the given token→userID map.
func NewStaticVerifier(s *store.Store, tokens map[string]int) *StaticVerifier {
	return &StaticVerifier{store: s, tokens: tokens}
}

// DevTokens are the token mappings used by the demo server when no JWT
// secret is configured, one well-known token per seed user.
func DevTokens() map[string]int {
	return map[string]int{
		"admin-token": 1,
		"alice-token": 2,
		"bob-token":   3,
	}
}

func (v *StaticVerifier) Verify(ctx context.Context, token string) (*store.User, error) {
	id, ok := v.tokens[token]
	if !ok {
		return nil, ErrInvalidToken
	}
	u, ok := v.store.UserByID(id)
	if !ok {
		return nil, ErrInvalidToken
	}
	return &u, nil
}
