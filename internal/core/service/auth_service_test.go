package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
	"github.com/taskboard/taskboard-api/internal/core/session"
	"github.com/taskboard/taskboard-api/internal/infrastructure/db/memory"
)

const testSecret = "secret"

// countingLimiter blocks a key after max recorded failures.
type countingLimiter struct {
	max      int
	failures map[string]int
	resets   int
}

func newCountingLimiter(max int) *countingLimiter {
	return &countingLimiter{max: max, failures: map[string]int{}}
}

func (l *countingLimiter) Blocked(_ context.Context, key string) (bool, error) {
	return l.failures[key] >= l.max, nil
}

func (l *countingLimiter) Fail(_ context.Context, key string) error {
	l.failures[key]++
	return nil
}

func (l *countingLimiter) Reset(_ context.Context, key string) error {
	delete(l.failures, key)
	l.resets++
	return nil
}

func newAuthService(opts AuthOptions) *AuthService {
	return NewAuthService(memory.NewUserRepository(), session.NewIssuer(testSecret, session.DefaultTTL), opts, zerolog.Nop())
}

func aliceSignUp() ports.SignUpInput {
	return ports.SignUpInput{
		Name:        "Alice",
		PhoneNumber: "555-0001",
		Address:     "1 Main St",
		Email:       "  Alice@Example.COM ",
		Password:    "pass123",
	}
}

func TestAuthService_SignUp_Success(t *testing.T) {
	svc := newAuthService(AuthOptions{})

	user, err := svc.SignUp(context.Background(), aliceSignUp())
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected an id to be assigned")
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected default role, got %q", user.Role)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_SignUp_Rejections(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(AuthOptions{})
	if _, err := svc.SignUp(ctx, aliceSignUp()); err != nil {
		t.Fatalf("seed sign up: %v", err)
	}

	dupPhone := aliceSignUp()
	dupPhone.Email = "other@example.com"
	if _, err := svc.SignUp(ctx, dupPhone); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists for a reused phone, got %v", err)
	}

	dupEmail := aliceSignUp()
	dupEmail.PhoneNumber = "555-9999"
	if _, err := svc.SignUp(ctx, dupEmail); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists for a reused email, got %v", err)
	}

	short := aliceSignUp()
	short.Email, short.PhoneNumber, short.Password = "b@example.com", "555-0002", "12345"
	if _, err := svc.SignUp(ctx, short); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for a short password, got %v", err)
	}

	admin := aliceSignUp()
	admin.Email, admin.PhoneNumber, admin.Role = "c@example.com", "555-0003", domain.RoleAdmin
	if _, err := svc.SignUp(ctx, admin); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for admin self sign-up, got %v", err)
	}
}

func TestAuthService_SignUp_PasswordOverBcryptLimit(t *testing.T) {
	svc := newAuthService(AuthOptions{})
	in := aliceSignUp()
	in.Password = strings.Repeat("p", 80)

	_, err := svc.SignUp(context.Background(), in)

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *domain.ValidationError, got %v", err)
	}
	if len(ve.Fields) != 1 || ve.Fields[0].Field != "password" {
		t.Fatalf("expected a password field error, got %+v", ve.Fields)
	}

	in.Password = strings.Repeat("p", 72)
	if _, err := svc.SignUp(context.Background(), in); err != nil {
		t.Fatalf("a 72-byte password should be accepted, got %v", err)
	}
}

func TestAuthService_SignUp_AdminWhenAllowed(t *testing.T) {
	svc := newAuthService(AuthOptions{AllowAdminSignUp: true})
	in := aliceSignUp()
	in.Role = domain.RoleAdmin

	user, err := svc.SignUp(context.Background(), in)
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if !user.IsAdmin() {
		t.Fatalf("expected admin role, got %q", user.Role)
	}
}

func TestAuthService_SignIn_IssuesDayLongToken(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(AuthOptions{})
	registered, err := svc.SignUp(ctx, aliceSignUp())
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}

	token, user, err := svc.SignIn(ctx, "ALICE@example.com", "pass123")
	if err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims, err := session.NewGuard(testSecret).Verify(token)
	if err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims.UserID != registered.ID || claims.Role != domain.RoleUser {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != 24*time.Hour {
		t.Fatalf("expected a 24h lifetime, got %v", got)
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.Method.Alg() != "HS256" {
		t.Fatalf("expected HS256, got %s", parsed.Method.Alg())
	}
}

func TestAuthService_SignIn_FailsUniformly(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(AuthOptions{})
	if _, err := svc.SignUp(ctx, aliceSignUp()); err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}

	cases := []struct {
		name, email, password string
	}{
		{"wrong password", "alice@example.com", "nope"},
		{"unknown email", "ghost@example.com", "pass123"},
		{"empty email", "", "pass123"},
		{"empty password", "alice@example.com", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token, user, err := svc.SignIn(ctx, tc.email, tc.password)
			if !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
			if token != "" || user != nil {
				t.Fatalf("no token or user should be returned on failure")
			}
		})
	}
}

func TestAuthService_SignIn_Throttles(t *testing.T) {
	ctx := context.Background()
	limiter := newCountingLimiter(2)
	svc := newAuthService(AuthOptions{Limiter: limiter})
	if _, err := svc.SignUp(ctx, aliceSignUp()); err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, _, err := svc.SignIn(ctx, "alice@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i, err)
		}
	}

	if _, _, err := svc.SignIn(ctx, "alice@example.com", "pass123"); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts once blocked, got %v", err)
	}

	delete(limiter.failures, "alice@example.com")
	if _, _, err := svc.SignIn(ctx, "alice@example.com", "pass123"); err != nil {
		t.Fatalf("SignIn after unblock returned error: %v", err)
	}
	if limiter.resets != 1 {
		t.Fatalf("expected the limiter to be reset after success, got %d resets", limiter.resets)
	}
}
