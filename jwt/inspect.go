package jwt

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNotJWT is returned by Inspect for tokens that are not JWT-shaped.
var ErrNotJWT = errors.New("token is not a jwt")

// Claims holds the registered claims the client cares about.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	HasExpiry bool
}

// Inspect describes the inspect operation and its observable behavior.
//
// Inspect decodes the registered claims of tokenStr without verifying its signature.
// Inspect returns ErrNotJWT when tokenStr is opaque or malformed.
func Inspect(tokenStr string) (Claims, error) {
	if strings.Count(tokenStr, ".") != 2 {
		return Claims{}, ErrNotJWT
	}

	registered := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, registered); err != nil {
		return Claims{}, ErrNotJWT
	}

	out := Claims{Subject: registered.Subject}
	if registered.IssuedAt != nil {
		out.IssuedAt = registered.IssuedAt.Time
	}
	if registered.ExpiresAt != nil {
		out.ExpiresAt = registered.ExpiresAt.Time
		out.HasExpiry = true
	}
	return out, nil
}

// Expired reports whether tokenStr carries an exp claim at or before now-leeway.
// Opaque tokens and JWTs without exp are never considered expired.
func Expired(tokenStr string, now time.Time, leeway time.Duration) bool {
	claims, err := Inspect(tokenStr)
	if err != nil || !claims.HasExpiry {
		return false
	}
	return !claims.ExpiresAt.Add(leeway).After(now)
}
