package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateRegistration(t *testing.T) {
	u := &User{Name: "Alice", PhoneNumber: "555", Address: "here", Email: "alice@example.com", Role: RoleUser}
	if err := ValidateRegistration(u, "secret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := ValidateRegistration(&User{Email: "nope", Role: "owner"}, "12345")
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	want := []string{"name", "phoneNumber", "address", "email", "role", "password"}
	if len(ve.Fields) != len(want) {
		t.Fatalf("expected %d field errors, got %+v", len(want), ve.Fields)
	}
	for i, f := range want {
		if ve.Fields[i].Field != f {
			t.Fatalf("field %d: expected %s, got %s", i, f, ve.Fields[i].Field)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Alice@Example.COM "); got != "alice@example.com" {
		t.Fatalf("unexpected normalized email %q", got)
	}
}

func TestMemberRoleFor(t *testing.T) {
	if got := MemberRoleFor(&User{Role: RoleSeller}); got != RoleSeller {
		t.Fatalf("expected the user's role, got %q", got)
	}
	if got := MemberRoleFor(&User{}); got != DefaultMemberRole {
		t.Fatalf("expected the default role, got %q", got)
	}
}

func TestPasswordProblem(t *testing.T) {
	cases := []struct {
		password string
		ok       bool
	}{
		{"12345", false},
		{"123456", true},
		{strings.Repeat("a", MaxPasswordLength), true},
		{strings.Repeat("a", MaxPasswordLength+1), false},
		{strings.Repeat("é", 37), false},
	}
	for _, tc := range cases {
		if got := PasswordProblem(tc.password) == ""; got != tc.ok {
			t.Fatalf("PasswordProblem(%d bytes): ok=%v, want %v", len(tc.password), got, tc.ok)
		}
	}
}
