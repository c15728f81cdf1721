package domain

import (
	"regexp"
	"strings"
	"time"
)

const (
	RoleUser   = "user"
	RoleAdmin  = "admin"
	RoleSeller = "seller"
)

// Password bounds apply to the plain password before hashing. bcrypt reads at
// most 72 bytes.
const (
	MinPasswordLength = 6
	MaxPasswordLength = 72
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// UserUpdatable lists the fields accepted by a user update.
var UserUpdatable = AllowList{"name", "fatherName", "phoneNumber", "address", "email", "bio", "password", "role"}

// User models a registered account. Email and phone number are unique.
type User struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	FatherName   string    `json:"fatherName,omitempty"`
	PhoneNumber  string    `json:"phoneNumber"`
	Address      string    `json:"address"`
	Email        string    `json:"email"`
	Bio          string    `json:"bio,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserRef is the populated form of a user reference.
type UserRef struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
	Bio   string `json:"bio,omitempty"`
}

func (u *User) Ref() UserRef {
	return UserRef{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Bio: u.Bio}
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAdmin, RoleSeller:
		return true
	}
	return false
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidateUser checks a stored user record.
func ValidateUser(u *User) error {
	return validateUser(u).OrNil()
}

// ValidateRegistration checks a new user together with the plain password,
// which is never kept on the record.
func ValidateRegistration(u *User, password string) error {
	ve := validateUser(u)
	if msg := PasswordProblem(password); msg != "" {
		ve.Add("password", msg)
	}
	return ve.OrNil()
}

// PasswordProblem describes why password cannot be hashed and stored, or
// returns "" when it can.
func PasswordProblem(password string) string {
	switch {
	case len(password) < MinPasswordLength:
		return "must be at least 6 characters"
	case len(password) > MaxPasswordLength:
		return "must be at most 72 bytes"
	}
	return ""
}

func validateUser(u *User) *ValidationError {
	ve := NewValidationError()
	if strings.TrimSpace(u.Name) == "" {
		ve.Add("name", "is required")
	}
	if strings.TrimSpace(u.PhoneNumber) == "" {
		ve.Add("phoneNumber", "is required")
	}
	if strings.TrimSpace(u.Address) == "" {
		ve.Add("address", "is required")
	}
	switch {
	case u.Email == "":
		ve.Add("email", "is required")
	case !ValidEmail(u.Email):
		ve.Add("email", "must be a valid email")
	}
	if !ValidRole(u.Role) {
		ve.Add("role", "must be one of: user admin seller")
	}
	return ve
}
