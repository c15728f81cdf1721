// Package session issues and verifies the signed tokens that carry a user's
// identity and role between requests.
//
// Tokens are HS256 JWTs with the claims {userId, role, iat, exp}. They are
// never stored, so a token stays valid until it expires even after the
// holder signs out.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

// DefaultTTL is the lifetime of an issued token.
const DefaultTTL = 24 * time.Hour

// Claims is the payload of a session token.
type Claims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) IsAdmin() bool {
	return c != nil && c.Role == domain.RoleAdmin
}

// Issuer signs new session tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock replaces the time source. Used by tests.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	i.now = now
	return i
}

func (i *Issuer) TTL() time.Duration { return i.ttl }

// Issue signs a token for the user. Timestamps are truncated to whole seconds
// so that exp - iat equals the TTL exactly once encoded.
func (i *Issuer) Issue(userID, role string) (string, *Claims, error) {
	issuedAt := i.now().UTC().Truncate(time.Second)
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(i.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return signed, claims, nil
}

// Guard decodes presented tokens and checks liveness and role.
type Guard struct {
	secret []byte
	now    func() time.Time
}

func NewGuard(secret string) *Guard {
	return &Guard{secret: []byte(secret), now: time.Now}
}

// WithClock replaces the time source. Used by tests.
func (g *Guard) WithClock(now func() time.Time) *Guard {
	g.now = now
	return g
}

// Verify succeeds only when the signature matches and now < exp.
func (g *Guard) Verify(token string) (*Claims, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: missing token", domain.ErrUnauthorized)
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(g.now),
	)

	claims := &Claims{}
	tkn, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return g.secret, nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, fmt.Errorf("%w: token expired", domain.ErrUnauthorized)
	case err != nil:
		return nil, fmt.Errorf("%w: invalid token", domain.ErrUnauthorized)
	case !tkn.Valid:
		return nil, fmt.Errorf("%w: invalid token", domain.ErrUnauthorized)
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: token missing user identity", domain.ErrUnauthorized)
	}
	return claims, nil
}

// RequireRole compares the role exactly, case included.
func RequireRole(claims *Claims, role string) error {
	if claims == nil {
		return domain.ErrUnauthorized
	}
	if claims.Role != role {
		return domain.ErrForbidden
	}
	return nil
}
