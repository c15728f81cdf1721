package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

type stubAuthService struct {
	signUpFn func(ctx context.Context, in ports.SignUpInput) (*domain.User, error)
	signInFn func(ctx context.Context, email, password string) (string, *domain.User, error)
}

func (s *stubAuthService) SignUp(ctx context.Context, in ports.SignUpInput) (*domain.User, error) {
	return s.signUpFn(ctx, in)
}

func (s *stubAuthService) SignIn(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.signInFn(ctx, email, password)
}

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func requireHTTPStatus(t *testing.T, err error, status int) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if he.Code != status {
		t.Fatalf("expected %d, got %d", status, he.Code)
	}
}

const signUpBody = `{"name":"Alice","phoneNumber":"555-0001","address":"1 Main St","email":"alice@example.com","password":"secret1"}`

func TestAuthHandler_SignUp_Success(t *testing.T) {
	stub := &stubAuthService{
		signUpFn: func(_ context.Context, in ports.SignUpInput) (*domain.User, error) {
			if in.Name != "Alice" || in.Email != "alice@example.com" || in.Password != "secret1" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: "u1", Name: in.Name, Email: in.Email, Role: domain.RoleUser, PasswordHash: "hash"}, nil
		},
	}
	c, rec := newJSONContext(http.MethodPost, "/api/sign_up", signUpBody)

	if err := NewAuthHandler(stub).SignUp(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "User is registered successfully." {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["_id"] != "u1" || user["role"] != "user" {
		t.Fatalf("unexpected user payload: %+v", resp["user"])
	}
	if _, leaked := user["password"]; leaked {
		t.Fatalf("password hash must not be serialized")
	}
}

func TestAuthHandler_SignUp_ValidationListsFields(t *testing.T) {
	stub := &stubAuthService{
		signUpFn: func(context.Context, ports.SignUpInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	c, _ := newJSONContext(http.MethodPost, "/api/sign_up", `{"name":"Bob","email":"not-an-email","password":"123"}`)

	err := NewAuthHandler(stub).SignUp(c)

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	got := map[string]bool{}
	for _, f := range ve.Fields {
		got[f.Field] = true
	}
	for _, want := range []string{"phoneNumber", "address", "email", "password"} {
		if !got[want] {
			t.Fatalf("expected %s in %+v", want, ve.Fields)
		}
	}
}

func TestAuthHandler_SignUp_UserExists(t *testing.T) {
	stub := &stubAuthService{
		signUpFn: func(context.Context, ports.SignUpInput) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	c, _ := newJSONContext(http.MethodPost, "/api/sign_up", signUpBody)

	if err := NewAuthHandler(stub).SignUp(c); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestAuthHandler_SignUp_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{}
	c, _ := newJSONContext(http.MethodPost, "/api/sign_up", "not-json")

	requireHTTPStatus(t, NewAuthHandler(stub).SignUp(c), http.StatusBadRequest)
}

func TestAuthHandler_SignIn_Success(t *testing.T) {
	stub := &stubAuthService{
		signInFn: func(_ context.Context, email, password string) (string, *domain.User, error) {
			if email != "alice@example.com" || password != "secret1" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "token123", &domain.User{ID: "u1", Name: "Alice", Role: domain.RoleAdmin}, nil
		},
	}
	c, rec := newJSONContext(http.MethodPost, "/api/sign_in", `{"email":"alice@example.com","password":"secret1"}`)

	if err := NewAuthHandler(stub).SignIn(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" || resp["tokken"] != "token123" {
		t.Fatalf("expected token under both keys, got %v / %v", resp["token"], resp["tokken"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["_id"] != "u1" || user["role"] != "admin" {
		t.Fatalf("unexpected user payload: %+v", resp["user"])
	}
}

func TestAuthHandler_SignIn_Failures(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"invalid credentials", domain.ErrInvalidCredentials},
		{"throttled", domain.ErrTooManyAttempts},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubAuthService{
				signInFn: func(context.Context, string, string) (string, *domain.User, error) {
					return "", nil, tc.err
				},
			}
			c, rec := newJSONContext(http.MethodPost, "/api/sign_in", `{"email":"alice@example.com","password":"bad"}`)

			err := NewAuthHandler(stub).SignIn(c)
			if !errors.Is(err, tc.err) {
				t.Fatalf("expected %v, got %v", tc.err, err)
			}
			if rec.Body.Len() != 0 {
				t.Fatalf("no body should be written on failure, got %q", rec.Body.String())
			}
		})
	}
}

func TestAuthHandler_SignIn_MissingFields(t *testing.T) {
	stub := &stubAuthService{
		signInFn: func(context.Context, string, string) (string, *domain.User, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	}
	c, _ := newJSONContext(http.MethodPost, "/api/sign_in", `{"email":"alice@example.com"}`)

	if err := NewAuthHandler(stub).SignIn(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
