package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
	"github.com/taskboard/taskboard-api/internal/infrastructure/db/memory"
)

func newTeamService(store *memory.Store) *TeamService {
	return NewTeamService(store.Teams, store.Users, zerolog.Nop())
}

func TestTeamService_CreateStartsEmpty(t *testing.T) {
	svc := newTeamService(memory.NewStore())

	team, err := svc.Create(context.Background(), "  Core ")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if team.Name != "Core" || len(team.Members) != 0 {
		t.Fatalf("unexpected team: %+v", team)
	}

	if _, err := svc.Create(context.Background(), " "); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected a blank name to fail, got %v", err)
	}
}

func TestTeamService_Members(t *testing.T) {
	store := memory.NewStore()
	svc := newTeamService(store)
	ctx := context.Background()
	alice := seedUser(t, store, "Alice", "alice@example.com", "555-0001")
	team, err := svc.Create(ctx, "Core")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	added, err := svc.AddMember(ctx, team.ID, alice.ID)
	if err != nil {
		t.Fatalf("AddMember returned error: %v", err)
	}
	want := ports.MemberDetail{UserID: alice.ID, Name: "Alice", Email: "alice@example.com", Role: domain.RoleUser}
	if len(added.Members) != 1 || added.Members[0] != want {
		t.Fatalf("unexpected members: %+v", added.Members)
	}

	if _, err := svc.AddMember(ctx, team.ID, alice.ID); !errors.Is(err, domain.ErrAlreadyMember) {
		t.Fatalf("expected ErrAlreadyMember, got %v", err)
	}
	again, _ := svc.Get(ctx, team.ID)
	if len(again.Members) != 1 {
		t.Fatalf("duplicate add must not grow the team: %+v", again.Members)
	}

	if _, err := svc.AddMember(ctx, team.ID, primitive.NewObjectID().Hex()); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.AddMember(ctx, primitive.NewObjectID().Hex(), alice.ID); !errors.Is(err, domain.ErrTeamNotFound) {
		t.Fatalf("expected ErrTeamNotFound, got %v", err)
	}

	same, err := svc.RemoveMember(ctx, team.ID, primitive.NewObjectID().Hex())
	if err != nil {
		t.Fatalf("removing a non-member should succeed, got %v", err)
	}
	if len(same.Members) != 1 {
		t.Fatalf("removing a non-member changed the team: %+v", same.Members)
	}

	emptied, err := svc.RemoveMember(ctx, team.ID, alice.ID)
	if err != nil {
		t.Fatalf("RemoveMember returned error: %v", err)
	}
	if len(emptied.Members) != 0 {
		t.Fatalf("expected no members, got %+v", emptied.Members)
	}
}

func TestTeamService_DanglingMember(t *testing.T) {
	store := memory.NewStore()
	svc := newTeamService(store)
	ctx := context.Background()
	alice := seedUser(t, store, "Alice", "alice@example.com", "555-0001")
	team, _ := svc.Create(ctx, "Core")
	if _, err := svc.AddMember(ctx, team.ID, alice.ID); err != nil {
		t.Fatalf("AddMember returned error: %v", err)
	}

	if err := store.Users.Delete(ctx, alice.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	got, err := svc.Get(ctx, team.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if len(got.Members) != 1 || got.Members[0].UserID != alice.ID || got.Members[0].Name != "" {
		t.Fatalf("expected an unresolved member entry, got %+v", got.Members)
	}
}

func TestTeamService_Update(t *testing.T) {
	svc := newTeamService(memory.NewStore())
	ctx := context.Background()
	team, _ := svc.Create(ctx, "Core")

	if _, err := svc.Update(ctx, team.ID, ports.TeamPatch{Fields: []string{"members"}}); !errors.Is(err, domain.ErrInvalidOperation) {
		t.Fatalf("expected ErrInvalidOperation, got %v", err)
	}

	name := "Platform"
	renamed, err := svc.Update(ctx, team.ID, ports.TeamPatch{Fields: []string{"name"}, Name: &name})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if renamed.Name != "Platform" {
		t.Fatalf("unexpected name: %q", renamed.Name)
	}

	if err := svc.Delete(ctx, team.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := svc.Get(ctx, team.ID); !errors.Is(err, domain.ErrTeamNotFound) {
		t.Fatalf("expected ErrTeamNotFound, got %v", err)
	}
}
