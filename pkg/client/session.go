package client

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const roleAdmin = "admin"

// Session is the token a signed-in caller holds, with its claims decoded
// but not verified. Only the server can verify the signature, so Valid and
// IsAdmin are advisory.
type Session struct {
	Token     string
	UserID    string
	Role      string
	ExpiresAt time.Time
}

type tokenClaims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// NewSession decodes token. It fails only when the token is not a JWT or
// carries no expiry.
func NewSession(token string) (*Session, error) {
	var claims tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("client: decode token: %w", err)
	}
	if claims.ExpiresAt == nil {
		return nil, errors.New("client: token has no expiry")
	}

	return &Session{
		Token:     token,
		UserID:    claims.UserID,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Valid reports whether a token is held and now is before its expiry.
func (s *Session) Valid(now time.Time) bool {
	return s != nil && s.Token != "" && now.Before(s.ExpiresAt)
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == roleAdmin
}

// Clear forgets the token. The server keeps accepting it until it expires.
func (s *Session) Clear() {
	if s == nil {
		return
	}
	*s = Session{}
}
