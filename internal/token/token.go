// Package token mints and verifies the signed, self-contained session tokens
// that gate access to protected endpoints. Tokens are stateless: verification
// is a pure function of (token, secret, current time).
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"authsvc/internal/auth"
)

// DefaultTTL is the validity window applied when no TTL is configured.
const DefaultTTL = 24 * time.Hour

// ErrInvalidToken covers every verification failure: bad signature, malformed
// encoding, wrong algorithm, or expiry. Callers must not distinguish between
// them in responses.
var ErrInvalidToken = errors.New("invalid token")

// Claims are the fields embedded and signed inside a session token.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Issuer mints and verifies session tokens with a process-wide secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer creates an Issuer. An empty secret is a configuration error and
// must prevent startup, not surface per-request.
func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, errors.New("token: signing secret is required")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue signs a token for the given user, valid from now until now + TTL.
func (i *Issuer) Issue(user auth.User) (string, error) {
	now := i.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		Email: user.Email,
		Name:  user.Name,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse validates the token's signature and expiry and returns its claims.
// Every failure collapses to ErrInvalidToken; the wrapped cause is for
// server-side logs only.
func (i *Issuer) Parse(raw string) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return i.now() }),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return claims, nil
}
