package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hanpama/shopgraph/internal/store"
)

// DefaultTokenTTL is the lifetime of minted tokens when none is configured.
const DefaultTokenTTL = 24 * time.Hour

// JWTVerifier validates HS256 tokens whose subject is the user id.
type JWTVerifier struct {
	store  *store.Store
	secret []byte
	issuer string
}

// NewJWTVerifier creates a verifier for tokens signed with the given secret.
func NewJWTVerifier(s *store.Store, secret []byte, issuer string) *JWTVerifier {
	return &JWTVerifier{store: s, secret: secret, issuer: issuer}
}

func (v *JWTVerifier) Verify(ctx context.Context, token string) (*store.User, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithIssuer(v.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	id, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}
	u, ok := v.store.UserByID(id)
	if !ok {
		return nil, ErrInvalidToken
	}
	return &u, nil
}

// Mint signs a token for the given user. Used by the mint-token command.
func Mint(secret []byte, issuer string, userID int, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.Itoa(userID),
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}
