// Package auth verifies bearer tokens and extracts the acting user. Token
// issuance belongs to the external identity provider; this service only
// checks signatures and reads the role claim.
package auth

import (
	"errors"
	"time"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/casaflow/casaflow/internal/domain/contact"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the JWT claims this service understands: the standard subject
// plus a role used to gate status mutations.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// ErrNoActor indicates a request without a verified token in context.
var ErrNoActor = errors.New("no authenticated actor in request context")

// Middleware returns JWT verification middleware for the given HS256 secret.
// Requests matched by the skipper pass through unauthenticated.
func Middleware(secret string, skipper middleware.Skipper) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		Skipper:    skipper,
		SigningKey: []byte(secret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(Claims)
		},
	})
}

// ActorFromContext returns the acting user extracted by the JWT middleware.
func ActorFromContext(c echo.Context) (contact.Actor, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return contact.Actor{}, ErrNoActor
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return contact.Actor{}, ErrNoActor
	}
	return contact.Actor{ID: claims.Subject, Role: claims.Role}, nil
}

// NewToken signs a token for the given subject and role. Used by tests and
// local tooling; production tokens come from the identity provider.
func NewToken(secret, subject, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
