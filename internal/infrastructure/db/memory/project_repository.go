package memory

import (
	"context"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

type ProjectRepository struct {
	c *collection[domain.Project]
}

func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{c: newCollection[domain.Project]()}
}

func cloneProject(p domain.Project) *domain.Project {
	p.TeamMembers = append([]string{}, p.TeamMembers...)
	if p.EndDate != nil {
		end := *p.EndDate
		p.EndDate = &end
	}
	return &p
}

func (r *ProjectRepository) Create(_ context.Context, p *domain.Project) (*domain.Project, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	stored := cloneProject(*p)
	stored.ID = newID()
	r.c.put(stored.ID, *stored)
	return cloneProject(*stored), nil
}

func (r *ProjectRepository) FindByID(_ context.Context, id string) (*domain.Project, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()

	p, ok := r.c.items[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	return cloneProject(p), nil
}

func (r *ProjectRepository) List(_ context.Context) ([]*domain.Project, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()

	all := r.c.all()
	out := make([]*domain.Project, len(all))
	for i, p := range all {
		out[i] = cloneProject(p)
	}
	return out, nil
}

func (r *ProjectRepository) Update(_ context.Context, p *domain.Project) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	if _, ok := r.c.items[p.ID]; !ok {
		return domain.ErrProjectNotFound
	}
	r.c.put(p.ID, *cloneProject(*p))
	return nil
}

func (r *ProjectRepository) Delete(_ context.Context, id string) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	if !r.c.remove(id) {
		return domain.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) AddMember(_ context.Context, projectID, userID string) (*domain.Project, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	p, ok := r.c.items[projectID]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	if p.HasMember(userID) {
		return nil, domain.ErrAlreadyMember
	}
	updated := cloneProject(p)
	updated.TeamMembers = append(updated.TeamMembers, userID)
	r.c.put(projectID, *updated)
	return cloneProject(*updated), nil
}

func (r *ProjectRepository) RemoveMember(_ context.Context, projectID, userID string) (*domain.Project, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	p, ok := r.c.items[projectID]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	kept := make([]string, 0, len(p.TeamMembers))
	for _, m := range p.TeamMembers {
		if m != userID {
			kept = append(kept, m)
		}
	}
	p.TeamMembers = kept
	r.c.put(projectID, p)
	return cloneProject(p), nil
}
