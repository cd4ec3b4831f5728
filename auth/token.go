// Package auth issues and verifies bearer tokens and hashes account
// passwords. Tokens are HS256 JWTs whose claims embed the full user
// record, so clients can recover the signed-in user from a persisted
// token without a round trip or the signing key.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/c360studio/taskboard/entity"
)

// DefaultTTL is the token lifetime used when the issuer is configured
// with a zero TTL.
const DefaultTTL = 24 * time.Hour

// ErrInvalidToken is returned when a token fails signature or claim
// validation.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the JWT payload for taskboard tokens.
type Claims struct {
	User entity.User `json:"user"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies tokens with a shared HMAC secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer creates an Issuer. A zero ttl falls back to DefaultTTL.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token for the given user. The password hash is excluded
// from the claims by the entity's JSON encoding.
func (i *Issuer) Issue(user entity.User) (string, error) {
	now := i.now()
	claims := Claims{
		User: user,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the token signature and expiry and returns its claims.
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// DecodeUser extracts the embedded user from a token without verifying
// the signature. This is the client-side path: the client never holds
// the signing key and only needs the payload to restore a session.
func DecodeUser(tokenString string) (entity.User, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return entity.User{}, ErrInvalidToken
	}
	if claims.User.ID == "" {
		return entity.User{}, ErrInvalidToken
	}
	return claims.User, nil
}
