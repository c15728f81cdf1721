//go:build integration

package mongo

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

var testDB *mongo.Database

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("docker pool: %v", err)
	}
	pool.MaxWait = 60 * time.Second

	resource, err := pool.Run("mongo", "7", nil)
	if err != nil {
		log.Fatalf("start mongo: %v", err)
	}
	_ = resource.Expire(180)

	var client *mongo.Client
	uri := fmt.Sprintf("mongodb://localhost:%s", resource.GetPort("27017/tcp"))
	if err := pool.Retry(func() error {
		var err error
		client, testDB, err = Connect(context.Background(), Config{URI: uri, Database: "taskboard_test", Timeout: 5 * time.Second})
		return err
	}); err != nil {
		_ = pool.Purge(resource)
		log.Fatalf("connect mongo: %v", err)
	}

	if err := NewStore(testDB).EnsureIndexes(context.Background()); err != nil {
		_ = pool.Purge(resource)
		log.Fatalf("ensure indexes: %v", err)
	}

	code := m.Run()

	_ = client.Disconnect(context.Background())
	if err := pool.Purge(resource); err != nil {
		log.Printf("purge mongo: %v", err)
	}
	os.Exit(code)
}

func TestUserRepository_UniqueIndexes(t *testing.T) {
	repo := NewUserRepository(testDB)
	ctx := context.Background()

	alice, err := repo.Create(ctx, &domain.User{Name: "Alice", Email: "alice@it.example", PhoneNumber: "it-1", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if !primitive.IsValidObjectID(alice.ID) {
		t.Fatalf("expected an ObjectID, got %q", alice.ID)
	}

	if _, err := repo.Create(ctx, &domain.User{Name: "Dup", Email: "alice@it.example", PhoneNumber: "it-2"}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	found, err := repo.FindByEmail(ctx, "alice@it.example")
	if err != nil || found.ID != alice.ID {
		t.Fatalf("unexpected lookup: %+v, %v", found, err)
	}

	if _, err := repo.FindByID(ctx, "not-an-id"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for a malformed id, got %v", err)
	}
}

func TestProjectRepository_MembersRoundTrip(t *testing.T) {
	repo := NewProjectRepository(testDB)
	ctx := context.Background()
	creator := primitive.NewObjectID().Hex()
	member := primitive.NewObjectID().Hex()

	p, err := repo.Create(ctx, &domain.Project{
		Title:       "IT",
		Status:      domain.StatusPlanning,
		Priority:    domain.PriorityHigh,
		StartDate:   time.Now(),
		TeamMembers: []string{},
		CreatedBy:   creator,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if _, err := repo.AddMember(ctx, p.ID, member); err != nil {
		t.Fatalf("AddMember returned error: %v", err)
	}
	if _, err := repo.AddMember(ctx, p.ID, member); !errors.Is(err, domain.ErrAlreadyMember) {
		t.Fatalf("expected ErrAlreadyMember, got %v", err)
	}
	if _, err := repo.AddMember(ctx, primitive.NewObjectID().Hex(), member); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}

	got, err := repo.FindByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if got.CreatedBy != creator || len(got.TeamMembers) != 1 || got.TeamMembers[0] != member {
		t.Fatalf("unexpected project: %+v", got)
	}

	if err := repo.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := repo.Delete(ctx, p.ID); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestTeamRepository_Members(t *testing.T) {
	repo := NewTeamRepository(testDB)
	ctx := context.Background()
	user := primitive.NewObjectID().Hex()

	team, err := repo.Create(ctx, &domain.Team{Name: "IT", Members: []domain.TeamMember{}, CreatedAt: time.Now()})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	added, err := repo.AddMember(ctx, team.ID, domain.TeamMember{UserID: user, Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("AddMember returned error: %v", err)
	}
	if len(added.Members) != 1 || added.Members[0].UserID != user {
		t.Fatalf("unexpected members: %+v", added.Members)
	}
	if _, err := repo.AddMember(ctx, team.ID, domain.TeamMember{UserID: user, Role: domain.RoleUser}); !errors.Is(err, domain.ErrAlreadyMember) {
		t.Fatalf("expected ErrAlreadyMember, got %v", err)
	}

	removed, err := repo.RemoveMember(ctx, team.ID, user)
	if err != nil {
		t.Fatalf("RemoveMember returned error: %v", err)
	}
	if len(removed.Members) != 0 {
		t.Fatalf("expected no members, got %+v", removed.Members)
	}
}
