package session

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIssuer_Issue_ExpiresAfterTTL(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 500, time.UTC)
	issuer := NewIssuer("secret", 0).WithClock(fixedClock(now))

	token, claims, err := issuer.Issue("u1", domain.RoleUser)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}

	decoded := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := decoded.ExpiresAt.Sub(decoded.IssuedAt.Time); got != 24*time.Hour {
		t.Fatalf("expected 24h lifetime, got %s", got)
	}
	if decoded.UserID != "u1" || decoded.Role != domain.RoleUser {
		t.Fatalf("unexpected claims: %+v", decoded)
	}
	if !claims.ExpiresAt.Time.Equal(decoded.ExpiresAt.Time) {
		t.Fatalf("returned claims differ from encoded claims")
	}
}

func TestGuard_Verify_Valid(t *testing.T) {
	now := time.Now()
	token, _, _ := NewIssuer("secret", time.Hour).WithClock(fixedClock(now)).Issue("u1", domain.RoleAdmin)

	claims, err := NewGuard("secret").WithClock(fixedClock(now.Add(59 * time.Minute))).Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.UserID != "u1" || !claims.IsAdmin() {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestGuard_Verify_Expired(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	token, _, _ := NewIssuer("secret", time.Hour).WithClock(fixedClock(now)).Issue("u1", domain.RoleUser)

	_, err := NewGuard("secret").WithClock(fixedClock(now.Add(time.Hour))).Verify(token)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized at exp, got %v", err)
	}
}

func TestGuard_Verify_WrongSecret(t *testing.T) {
	token, _, _ := NewIssuer("secret", time.Hour).Issue("u1", domain.RoleUser)

	if _, err := NewGuard("other").Verify(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestGuard_Verify_RejectsOtherAlgorithms(t *testing.T) {
	claims := &Claims{
		UserID: "u1",
		Role:   domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := NewGuard("secret").Verify(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestGuard_Verify_Garbage(t *testing.T) {
	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := NewGuard("secret").Verify(token); !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("token %q: expected ErrUnauthorized, got %v", token, err)
		}
	}
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name   string
		claims *Claims
		want   error
	}{
		{"admin", &Claims{Role: "admin"}, nil},
		{"case differs", &Claims{Role: "Admin"}, domain.ErrForbidden},
		{"user", &Claims{Role: "user"}, domain.ErrForbidden},
		{"no claims", nil, domain.ErrUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := RequireRole(tc.claims, domain.RoleAdmin)
			if !errors.Is(err, tc.want) && !(err == nil && tc.want == nil) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
