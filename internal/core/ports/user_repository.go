package ports

import (
	"context"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

// UserRepository is the credential store. Email and phone number are unique;
// a duplicate on either fails with domain.ErrUserExists.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByIDs returns the users that exist among ids; missing ids are skipped.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// Update replaces the stored record (last write wins).
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}

// AttemptLimiter throttles repeated failed sign-ins for the same key.
type AttemptLimiter interface {
	Blocked(ctx context.Context, key string) (bool, error)
	Fail(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}
