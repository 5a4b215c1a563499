// Package memory provides in-memory implementations of the store interfaces.
// It is safe for concurrent use and intended for tests and local development.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// Store holds all entities behind a single lock. Insertion order is kept so
// listings come back in creation order like the postgres stores.
type Store struct {
	mu sync.RWMutex

	users        map[uuid.UUID]userRecord
	projects     map[uuid.UUID]projectRecord
	projectOrder []uuid.UUID
	tasks        map[uuid.UUID]taskRecord
	taskOrder    []uuid.UUID
}

// New creates an empty store.
func New() *Store {
	return &Store{
		users:    make(map[uuid.UUID]userRecord),
		projects: make(map[uuid.UUID]projectRecord),
		tasks:    make(map[uuid.UUID]taskRecord),
	}
}

// Users returns a UserStore view of s.
func (s *Store) Users() *UserRepository {
	return &UserRepository{s: s}
}

// Projects returns a ProjectStore view of s.
func (s *Store) Projects() *ProjectRepository {
	return &ProjectRepository{s: s}
}

// Tasks returns a TaskStore view of s.
func (s *Store) Tasks() *TaskRepository {
	return &TaskRepository{s: s}
}

// Ping always succeeds.
func (s *Store) Ping(_ context.Context) error {
	return nil
}

func cloneIDs(ids []uuid.UUID) []uuid.UUID {
	if ids == nil {
		return []uuid.UUID{}
	}
	return slices.Clone(ids)
}

func appendUnique(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	if slices.Contains(ids, id) {
		return ids
	}
	return append(ids, id)
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	return slices.DeleteFunc(ids, func(v uuid.UUID) bool { return v == id })
}
