package memory

import (
	"context"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

type TaskRepository struct {
	c *collection[domain.Task]
}

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{c: newCollection[domain.Task]()}
}

func (r *TaskRepository) Create(_ context.Context, t *domain.Task) (*domain.Task, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	stored := *t
	stored.ID = newID()
	r.c.put(stored.ID, stored)
	return &stored, nil
}

func (r *TaskRepository) FindByID(_ context.Context, id string) (*domain.Task, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()

	t, ok := r.c.items[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return &t, nil
}

func (r *TaskRepository) List(_ context.Context) ([]*domain.Task, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()

	all := r.c.all()
	out := make([]*domain.Task, len(all))
	for i := range all {
		out[i] = &all[i]
	}
	return out, nil
}

func (r *TaskRepository) Update(_ context.Context, t *domain.Task) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	if _, ok := r.c.items[t.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	r.c.put(t.ID, *t)
	return nil
}

func (r *TaskRepository) Delete(_ context.Context, id string) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	if !r.c.remove(id) {
		return domain.ErrTaskNotFound
	}
	return nil
}
