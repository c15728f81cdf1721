package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

func TestProjectRepository_ConcurrentAddMemberKeepsOneEntry(t *testing.T) {
	repo := NewProjectRepository()
	ctx := context.Background()
	p, err := repo.Create(ctx, &domain.Project{Title: "P", StartDate: time.Now(), CreatedBy: "u"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	const workers = 16
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok, dups int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.AddMember(ctx, p.ID, "member")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrAlreadyMember):
				dups++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if ok != 1 || dups != workers-1 {
		t.Fatalf("expected one success and %d conflicts, got %d / %d", workers-1, ok, dups)
	}
	got, _ := repo.FindByID(ctx, p.ID)
	if len(got.TeamMembers) != 1 {
		t.Fatalf("expected a single member, got %v", got.TeamMembers)
	}
}

func TestTeamRepository_ReturnsCopies(t *testing.T) {
	repo := NewTeamRepository()
	ctx := context.Background()
	team, _ := repo.Create(ctx, &domain.Team{Name: "Core"})

	team.Members = append(team.Members, domain.TeamMember{UserID: "intruder"})
	team.Name = "changed"

	stored, err := repo.FindByID(ctx, team.ID)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if stored.Name != "Core" || len(stored.Members) != 0 {
		t.Fatalf("caller mutation leaked into the store: %+v", stored)
	}
}

func TestUserRepository_UniqueEmailAndPhone(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()
	alice, err := repo.Create(ctx, &domain.User{Name: "Alice", Email: "a@example.com", PhoneNumber: "1"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if _, err := repo.Create(ctx, &domain.User{Email: "a@example.com", PhoneNumber: "2"}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists for a reused email, got %v", err)
	}
	if _, err := repo.Create(ctx, &domain.User{Email: "b@example.com", PhoneNumber: "1"}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists for a reused phone, got %v", err)
	}

	alice.Name = "Alicia"
	if err := repo.Update(ctx, alice); err != nil {
		t.Fatalf("updating a user with its own email should pass, got %v", err)
	}

	found, err := repo.FindByEmail(ctx, "a@example.com")
	if err != nil || found.Name != "Alicia" {
		t.Fatalf("unexpected lookup result: %+v, %v", found, err)
	}
}

func TestCollection_ListKeepsInsertionOrder(t *testing.T) {
	repo := NewTaskRepository()
	ctx := context.Background()
	var ids []string
	for _, title := range []string{"a", "b", "c"} {
		task, _ := repo.Create(ctx, &domain.Task{Title: title})
		ids = append(ids, task.ID)
	}
	if err := repo.Delete(ctx, ids[1]); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	tasks, _ := repo.List(ctx)
	if len(tasks) != 2 || tasks[0].ID != ids[0] || tasks[1].ID != ids[2] {
		t.Fatalf("unexpected order: %+v", tasks)
	}
}
