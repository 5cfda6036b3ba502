// Package token issues and verifies signed identity tokens binding a user
// identifier to a process-wide secret.
package token

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken signals a malformed token, a bad signature, or a token
// missing the bound user identifier.
var ErrInvalidToken = errors.New("invalid token")

// Service signs and verifies identity tokens with an HMAC secret.
// The secret is injected at construction; the package keeps no globals.
type Service struct {
	secret []byte
}

// New constructs a Service signing with the given secret.
func New(secret string) *Service {
	return &Service{secret: []byte(secret)}
}

// Issue produces a signed token carrying the user's identifier.
// Tokens carry no expiry claim: they stay valid until the secret rotates.
func (s *Service) Issue(userID string) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"_id": userID,
	})
	return t.SignedString(s.secret)
}

// Verify checks the token signature and returns the bound user identifier.
// Returns ErrInvalidToken if the token is malformed, signed with a different
// secret, or carries no identifier.
func (s *Service) Verify(tokenString string) (string, error) {
	t, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !t.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	userID, ok := claims["_id"].(string)
	if !ok || userID == "" {
		return "", ErrInvalidToken
	}
	return userID, nil
}
