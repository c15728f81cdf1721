// Package memory provides map-backed repositories used when STORE=memory and
// by tests. Records are cloned on the way in and out so callers never share
// state with the store.
package memory

import (
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store groups one repository per collection.
type Store struct {
	Users    *UserRepository
	Projects *ProjectRepository
	Tasks    *TaskRepository
	Teams    *TeamRepository
}

func NewStore() *Store {
	return &Store{
		Users:    NewUserRepository(),
		Projects: NewProjectRepository(),
		Tasks:    NewTaskRepository(),
		Teams:    NewTeamRepository(),
	}
}

// newID returns identifiers shaped like the ones Mongo assigns.
func newID() string {
	return primitive.NewObjectID().Hex()
}

// collection is an insertion-ordered map guarded by a mutex.
type collection[T any] struct {
	mu    sync.RWMutex
	order []string
	items map[string]T
}

func newCollection[T any]() *collection[T] {
	return &collection[T]{items: make(map[string]T)}
}

func (c *collection[T]) put(id string, v T) {
	if _, ok := c.items[id]; !ok {
		c.order = append(c.order, id)
	}
	c.items[id] = v
}

func (c *collection[T]) remove(id string) bool {
	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	for i, o := range c.order {
		if o == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

func (c *collection[T]) all() []T {
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}
