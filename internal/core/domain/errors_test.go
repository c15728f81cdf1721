package domain

import (
	"errors"
	"testing"
)

func TestAllowList_Check(t *testing.T) {
	list := AllowList{"title", "status"}

	if err := list.Check(nil); err != nil {
		t.Fatalf("empty keys should pass, got %v", err)
	}
	if err := list.Check([]string{"status", "title"}); err != nil {
		t.Fatalf("allowed keys should pass, got %v", err)
	}

	err := list.Check([]string{"title", "owner", "createdBy"})
	if !errors.Is(err, ErrInvalidOperation) {
		t.Fatalf("expected ErrInvalidOperation, got %v", err)
	}
	if errors.Is(err, ErrValidation) {
		t.Fatalf("an allow-list failure is not a plain validation failure")
	}

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(ve.Fields) != 2 || ve.Fields[0].Field != "createdBy" || ve.Fields[1].Field != "owner" {
		t.Fatalf("expected the rejected keys in sorted order, got %+v", ve.Fields)
	}
}

func TestValidationError_OrNil(t *testing.T) {
	ve := NewValidationError()
	if ve.OrNil() != nil {
		t.Fatalf("an empty ValidationError must collapse to nil")
	}

	ve.Add("name", "is required")
	err := ve.OrNil()
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if err.Error() != "validation failed: name is required" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestNotFoundErrorsShareKind(t *testing.T) {
	for _, err := range []error{ErrUserNotFound, ErrProjectNotFound, ErrTaskNotFound, ErrTeamNotFound} {
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("%v should match ErrNotFound", err)
		}
	}
	for _, err := range []error{ErrUserExists, ErrAlreadyMember} {
		if !errors.Is(err, ErrConflict) {
			t.Fatalf("%v should match ErrConflict", err)
		}
	}
}
