package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidOperation   = errors.New("invalid updates")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many sign-in attempts")
)

var (
	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)
	ErrProjectNotFound = fmt.Errorf("project %w", ErrNotFound)
	ErrTaskNotFound    = fmt.Errorf("task %w", ErrNotFound)
	ErrTeamNotFound    = fmt.Errorf("team %w", ErrNotFound)

	ErrUserExists    = fmt.Errorf("user already exists: %w", ErrConflict)
	ErrAlreadyMember = fmt.Errorf("user already a member: %w", ErrConflict)
)

// FieldError describes one offending field of a request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every offending field. It matches ErrValidation, or
// ErrInvalidOperation when built by AllowList.Check.
type ValidationError struct {
	kind   error
	Fields []FieldError
}

// NewValidationError returns an empty ValidationError of kind ErrValidation.
func NewValidationError() *ValidationError {
	return &ValidationError{kind: ErrValidation}
}

func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// OrNil returns nil when no field was added so callers can return it directly.
func (e *ValidationError) OrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+" "+f.Message)
	}
	return e.kind.Error() + ": " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error { return e.kind }

// Invalid is a shorthand for a single-field validation failure.
func Invalid(field, message string) error {
	ve := NewValidationError()
	ve.Add(field, message)
	return ve
}

// AllowList is the set of fields an update may touch.
type AllowList []string

// Check fails with ErrInvalidOperation, naming every key outside the list.
func (a AllowList) Check(keys []string) error {
	var rejected []string
	for _, k := range keys {
		if !a.Contains(k) {
			rejected = append(rejected, k)
		}
	}
	if len(rejected) == 0 {
		return nil
	}
	sort.Strings(rejected)
	ve := &ValidationError{kind: ErrInvalidOperation}
	for _, k := range rejected {
		ve.Add(k, "is not an updatable field")
	}
	return ve
}

func (a AllowList) Contains(key string) bool {
	for _, allowed := range a {
		if allowed == key {
			return true
		}
	}
	return false
}
