package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}

// Store groups one repository per collection.
type Store struct {
	Users    *UserRepository
	Projects *ProjectRepository
	Tasks    *TaskRepository
	Teams    *TeamRepository
}

func NewStore(db *mongo.Database) *Store {
	return &Store{
		Users:    NewUserRepository(db),
		Projects: NewProjectRepository(db),
		Tasks:    NewTaskRepository(db),
		Teams:    NewTeamRepository(db),
	}
}

// EnsureIndexes creates the unique and lookup indexes of every collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	if err := s.Users.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}
	if err := s.Projects.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("projects indexes: %w", err)
	}
	if err := s.Tasks.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("tasks indexes: %w", err)
	}
	if err := s.Teams.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("teams indexes: %w", err)
	}
	return nil
}

// objectID parses a hex id. Ids that cannot be parsed match no document, so
// callers report them as not found.
func objectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	return oid, err == nil
}

// storedTime truncates to the millisecond precision BSON dates keep.
func storedTime(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC().Truncate(time.Millisecond)
}
