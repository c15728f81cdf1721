package memory

import (
	"context"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

type TeamRepository struct {
	c *collection[domain.Team]
}

func NewTeamRepository() *TeamRepository {
	return &TeamRepository{c: newCollection[domain.Team]()}
}

func cloneTeam(t domain.Team) *domain.Team {
	t.Members = append([]domain.TeamMember{}, t.Members...)
	return &t
}

func (r *TeamRepository) Create(_ context.Context, t *domain.Team) (*domain.Team, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	stored := cloneTeam(*t)
	stored.ID = newID()
	r.c.put(stored.ID, *stored)
	return cloneTeam(*stored), nil
}

func (r *TeamRepository) FindByID(_ context.Context, id string) (*domain.Team, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()

	t, ok := r.c.items[id]
	if !ok {
		return nil, domain.ErrTeamNotFound
	}
	return cloneTeam(t), nil
}

func (r *TeamRepository) List(_ context.Context) ([]*domain.Team, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()

	all := r.c.all()
	out := make([]*domain.Team, len(all))
	for i, t := range all {
		out[i] = cloneTeam(t)
	}
	return out, nil
}

func (r *TeamRepository) Update(_ context.Context, t *domain.Team) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	current, ok := r.c.items[t.ID]
	if !ok {
		return domain.ErrTeamNotFound
	}
	current.Name = t.Name
	r.c.put(t.ID, current)
	return nil
}

func (r *TeamRepository) Delete(_ context.Context, id string) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	if !r.c.remove(id) {
		return domain.ErrTeamNotFound
	}
	return nil
}

func (r *TeamRepository) AddMember(_ context.Context, teamID string, member domain.TeamMember) (*domain.Team, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	t, ok := r.c.items[teamID]
	if !ok {
		return nil, domain.ErrTeamNotFound
	}
	if t.HasMember(member.UserID) {
		return nil, domain.ErrAlreadyMember
	}
	updated := cloneTeam(t)
	updated.Members = append(updated.Members, member)
	r.c.put(teamID, *updated)
	return cloneTeam(*updated), nil
}

func (r *TeamRepository) RemoveMember(_ context.Context, teamID, userID string) (*domain.Team, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	t, ok := r.c.items[teamID]
	if !ok {
		return nil, domain.ErrTeamNotFound
	}
	kept := make([]domain.TeamMember, 0, len(t.Members))
	for _, m := range t.Members {
		if m.UserID != userID {
			kept = append(kept, m)
		}
	}
	t.Members = kept
	r.c.put(teamID, t)
	return cloneTeam(t), nil
}
