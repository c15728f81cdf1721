package ports

import (
	"context"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
	// AddMember appends userID unless it is already present, in which case it
	// fails with domain.ErrAlreadyMember and leaves the list untouched.
	AddMember(ctx context.Context, projectID, userID string) (*domain.Project, error)
	// RemoveMember pulls userID; removing an absent member is not an error.
	RemoveMember(ctx context.Context, projectID, userID string) (*domain.Project, error)
}
