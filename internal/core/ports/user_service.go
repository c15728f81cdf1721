package ports

import (
	"context"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

// Actor identifies the authenticated caller. A nil *Actor means the request
// was not authenticated because enforcement is switched off.
type Actor struct {
	UserID string
	Role   string
}

func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == domain.RoleAdmin
}

// UserPatch holds the decoded update body. Fields lists every key present in
// the body, including keys that are not updatable.
type UserPatch struct {
	Fields      []string
	Name        *string
	FatherName  *string
	PhoneNumber *string
	Address     *string
	Email       *string
	Bio         *string
	Password    *string
	Role        *string
}

type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, patch UserPatch, actor *Actor) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
