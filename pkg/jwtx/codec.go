package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token TTLs. Short access tokens limit the blast radius of a
// leaked token; refresh tokens trade that off for user convenience.
const (
	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// ErrInvalidToken is the single failure Verify surfaces. Signature
// mismatch, malformed compact form and expiry all collapse into it so
// callers cannot leak which check failed.
var ErrInvalidToken = errors.New("jwtx: invalid token")

// Claims are the claims embedded in both access and refresh tokens:
// registered claims plus the email and role current at mint time. The
// subject claim carries the user id.
type Claims struct {
	jwt.RegisteredClaims

	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// NewClaims builds claims for a token minted now with the given lifetime.
func NewClaims(subject, email, role string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Email: email,
		Role:  role,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// Sign produces a compact HS256 token over claims. The secret is supplied
// per call; access and refresh tokens are signed with independent secrets
// and this package never holds a default.
func Sign(claims Claims, secret []byte) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("jwtx: empty signing secret")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a compact token against the secret for its
// kind. The returned error always matches ErrInvalidToken via errors.Is;
// the underlying cause is wrapped for logging only and must not reach
// clients.
func Verify(tokenString string, secret []byte) (Claims, error) {
	claims := Claims{}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&claims,
		func(t *jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return Claims{}, ErrInvalidToken
	}

	return claims, nil
}
