package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
	"github.com/taskboard/taskboard-api/internal/infrastructure/db/memory"
)

var fixedNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func newTaskService(store *memory.Store) *TaskService {
	svc := NewTaskService(store.Tasks, store.Users, zerolog.Nop())
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func seedUser(t *testing.T, store *memory.Store, name, email, phone string) *domain.User {
	t.Helper()
	u, err := store.Users.Create(context.Background(), &domain.User{
		Name:        name,
		PhoneNumber: phone,
		Address:     "somewhere",
		Email:       email,
		Role:        domain.RoleUser,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestTaskService_Create_DueDate(t *testing.T) {
	store := memory.NewStore()
	svc := newTaskService(store)
	creator := seedUser(t, store, "Alice", "alice@example.com", "555-0001")
	ctx := context.Background()

	in := ports.CreateTaskInput{Title: "Write docs", Assignee: creator.ID, CreatedBy: creator.ID}

	in.DueDate = fixedNow.Add(-time.Second)
	if _, err := svc.Create(ctx, in); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected a past due date to fail, got %v", err)
	}

	in.DueDate = fixedNow
	if _, err := svc.Create(ctx, in); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected a due date equal to now to fail, got %v", err)
	}

	in.DueDate = fixedNow.Add(time.Second)
	task, err := svc.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if task.Priority != domain.PriorityMedium {
		t.Fatalf("expected default priority, got %q", task.Priority)
	}
}

func TestTaskService_Create_Limits(t *testing.T) {
	store := memory.NewStore()
	svc := newTaskService(store)
	creator := seedUser(t, store, "Alice", "alice@example.com", "555-0001")

	long := make([]byte, 101)
	for i := range long {
		long[i] = 'a'
	}
	_, err := svc.Create(context.Background(), ports.CreateTaskInput{
		Title:     string(long),
		DueDate:   fixedNow.Add(time.Hour),
		Assignee:  creator.ID,
		CreatedBy: creator.ID,
	})

	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Fields[0].Field != "title" {
		t.Fatalf("expected a title length error, got %v", err)
	}
}

func TestTaskService_Get_ResolvesCreator(t *testing.T) {
	store := memory.NewStore()
	svc := newTaskService(store)
	creator := seedUser(t, store, "Alice", "alice@example.com", "555-0001")
	ctx := context.Background()

	task, err := svc.Create(ctx, ports.CreateTaskInput{
		Title:     "Ship",
		DueDate:   fixedNow.Add(time.Hour),
		Assignee:  creator.ID,
		CreatedBy: creator.ID,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	detail, err := svc.Get(ctx, task.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if detail.Creator == nil || detail.Creator.Name != "Alice" || detail.Creator.Email != "alice@example.com" {
		t.Fatalf("unexpected creator: %+v", detail.Creator)
	}

	if err := store.Users.Delete(ctx, creator.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	detail, err = svc.Get(ctx, task.ID)
	if err != nil {
		t.Fatalf("Get after creator removal returned error: %v", err)
	}
	if detail.Creator != nil {
		t.Fatalf("expected a dangling creator to resolve to nil, got %+v", detail.Creator)
	}
}

func TestTaskService_Update(t *testing.T) {
	store := memory.NewStore()
	svc := newTaskService(store)
	creator := seedUser(t, store, "Alice", "alice@example.com", "555-0001")
	ctx := context.Background()

	task, err := svc.Create(ctx, ports.CreateTaskInput{
		Title:     "Ship",
		DueDate:   fixedNow.Add(time.Hour),
		Assignee:  creator.ID,
		CreatedBy: creator.ID,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if _, err := svc.Update(ctx, task.ID, ports.TaskPatch{Fields: []string{"createdBy"}}); !errors.Is(err, domain.ErrInvalidOperation) {
		t.Fatalf("expected ErrInvalidOperation, got %v", err)
	}
	if _, err := svc.Update(ctx, task.ID, ports.TaskPatch{}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected an empty patch to fail, got %v", err)
	}

	past := fixedNow.Add(-time.Hour)
	if _, err := svc.Update(ctx, task.ID, ports.TaskPatch{Fields: []string{"dueDate"}, DueDate: &past}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected a past due date to fail, got %v", err)
	}

	high := string(domain.PriorityHigh)
	updated, err := svc.Update(ctx, task.ID, ports.TaskPatch{Fields: []string{"priority"}, Priority: &high})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Priority != domain.PriorityHigh || !updated.DueDate.Equal(task.DueDate) {
		t.Fatalf("unexpected task after update: %+v", updated)
	}

	if err := svc.Delete(ctx, task.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := svc.Delete(ctx, task.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}
