package memory

import (
	"context"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

type UserRepository struct {
	c *collection[domain.User]
}

func NewUserRepository() *UserRepository {
	return &UserRepository{c: newCollection[domain.User]()}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	if r.clashes(user, "") {
		return nil, domain.ErrUserExists
	}
	u := *user
	u.ID = newID()
	r.c.put(u.ID, u)
	return &u, nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()

	u, ok := r.c.items[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()

	for _, u := range r.c.items {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) FindByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()

	out := make([]*domain.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.c.items[id]; ok {
			out = append(out, &u)
		}
	}
	return out, nil
}

func (r *UserRepository) List(_ context.Context) ([]*domain.User, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()

	all := r.c.all()
	out := make([]*domain.User, len(all))
	for i := range all {
		out[i] = &all[i]
	}
	return out, nil
}

func (r *UserRepository) Update(_ context.Context, user *domain.User) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	if _, ok := r.c.items[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	if r.clashes(user, user.ID) {
		return domain.ErrUserExists
	}
	r.c.put(user.ID, *user)
	return nil
}

func (r *UserRepository) Delete(_ context.Context, id string) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	if !r.c.remove(id) {
		return domain.ErrUserNotFound
	}
	return nil
}

// clashes reports whether another user already holds the email or phone.
func (r *UserRepository) clashes(user *domain.User, self string) bool {
	for id, u := range r.c.items {
		if id == self {
			continue
		}
		if u.Email == user.Email || u.PhoneNumber == user.PhoneNumber {
			return true
		}
	}
	return false
}
