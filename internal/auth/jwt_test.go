package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hanpama/shopgraph/internal/store"
)

const testIssuer = "shopgraph"

func TestJWTRoundTrip(t *testing.T) {
	st := store.Seed()
	secret := []byte("test-secret")
	v := NewJWTVerifier(st, secret, testIssuer)

	token, err := Mint(secret, testIssuer, 2, time.Hour)
	require.NoError(t, err)

	u, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, 2, u.ID)
	require.Equal(t, "alice@example.com", u.Email)
	require.Equal(t, store.RoleUser, u.Role)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	st := store.Seed()
	v := NewJWTVerifier(st, []byte("right"), testIssuer)

	token, err := Mint([]byte("wrong"), testIssuer, 2, time.Hour)
	require.NoError(t, err)

	_, err = v.Verify(context.Background(), token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTRejectsExpired(t *testing.T) {
	st := store.Seed()
	secret := []byte("test-secret")
	v := NewJWTVerifier(st, secret, testIssuer)

	token, err := Mint(secret, testIssuer, 2, -time.Minute)
	require.NoError(t, err)

	_, err = v.Verify(context.Background(), token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTRejectsWrongIssuer(t *testing.T) {
	st := store.Seed()
	secret := []byte("test-secret")
	v := NewJWTVerifier(st, secret, testIssuer)

	token, err := Mint(secret, "someone-else", 2, time.Hour)
	require.NoError(t, err)

	_, err = v.Verify(context.Background(), token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTRejectsUnknownUser(t *testing.T) {
	st := store.Seed()
	secret := []byte("test-secret")
	v := NewJWTVerifier(st, secret, testIssuer)

	token, err := Mint(secret, testIssuer, 99, time.Hour)
	require.NoError(t, err)

	_, err = v.Verify(context.Background(), token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestStaticVerifier(t *testing.T) {
	st := store.Seed()
	v := NewStaticVerifier(st, DevTokens())

	u, err := v.Verify(context.Background(), "admin-token")
	require.NoError(t, err)
	require.Equal(t, store.RoleAdmin, u.Role)

	_, err = v.Verify(context.Background(), "nope")
	require.ErrorIs(t, err, ErrInvalidToken)
}
