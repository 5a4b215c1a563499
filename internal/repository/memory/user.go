package memory

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/tasktracker-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type userRecord struct {
	model.User
}

// UserRepository is the user view of a Store.
type UserRepository struct {
	s *Store
}

func cloneUser(u model.User) model.User {
	u.ProjectIDs = cloneIDs(u.ProjectIDs)
	u.PasswordHash = slices.Clone(u.PasswordHash)
	u.RefreshTokenHash = slices.Clone(u.RefreshTokenHash)
	return u
}

// taken reports whether another user already uses username or email. Caller holds the lock.
func (r *UserRepository) taken(id uuid.UUID, username, email string) bool {
	for _, rec := range r.s.users {
		if rec.ID == id {
			continue
		}
		if rec.Username == username || rec.Email == email {
			return true
		}
	}
	return false
}

func (r *UserRepository) Create(_ context.Context, user model.User) (model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[user.ID]; ok || r.taken(user.ID, user.Username, user.Email) {
		return model.User{}, model.ErrConflict
	}

	user = cloneUser(user)
	r.s.users[user.ID] = userRecord{User: user}
	return cloneUser(user), nil
}

func (r *UserRepository) GetByID(_ context.Context, id uuid.UUID) (model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.users[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return cloneUser(rec.User), nil
}

func (r *UserRepository) GetByIDs(_ context.Context, ids []uuid.UUID) ([]model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	users := make([]model.User, 0, len(ids))
	for _, id := range ids {
		if rec, ok := r.s.users[id]; ok {
			users = append(users, cloneUser(rec.User))
		}
	}
	return users, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (model.User, error) {
	return r.find(func(u model.User) bool { return u.Email == email })
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (model.User, error) {
	return r.find(func(u model.User) bool { return u.Username == username })
}

func (r *UserRepository) find(match func(model.User) bool) (model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, rec := range r.s.users {
		if match(rec.User) {
			return cloneUser(rec.User), nil
		}
	}
	return model.User{}, model.ErrNotFound
}

func (r *UserRepository) Update(_ context.Context, user model.User) (model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.users[user.ID]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	if r.taken(user.ID, user.Username, user.Email) {
		return model.User{}, model.ErrConflict
	}

	rec.Username = user.Username
	rec.Email = user.Email
	rec.FullName = user.FullName
	rec.PasswordHash = slices.Clone(user.PasswordHash)
	rec.UpdatedAt = time.Now().UTC()
	r.s.users[user.ID] = rec
	return cloneUser(rec.User), nil
}

func (r *UserRepository) SetRefreshTokenHash(_ context.Context, id uuid.UUID, hash []byte) error {
	return r.mutate(id, func(u *model.User) {
		u.RefreshTokenHash = slices.Clone(hash)
	})
}

func (r *UserRepository) AddProject(_ context.Context, userID, projectID uuid.UUID) error {
	return r.mutate(userID, func(u *model.User) {
		u.ProjectIDs = appendUnique(u.ProjectIDs, projectID)
	})
}

func (r *UserRepository) RemoveProject(_ context.Context, userID, projectID uuid.UUID) error {
	return r.mutate(userID, func(u *model.User) {
		u.ProjectIDs = removeID(u.ProjectIDs, projectID)
	})
}

func (r *UserRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return model.ErrNotFound
	}
	delete(r.s.users, id)
	return nil
}

func (r *UserRepository) mutate(id uuid.UUID, fn func(*model.User)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.users[id]
	if !ok {
		return model.ErrNotFound
	}
	fn(&rec.User)
	rec.UpdatedAt = time.Now().UTC()
	r.s.users[id] = rec
	return nil
}
