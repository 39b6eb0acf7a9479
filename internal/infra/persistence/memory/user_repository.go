// Package memory implements the repository interfaces with in-process maps.
// Everything lives for the life of the process, which is the intended
// deployment model for the demo backend. All repositories are safe for
// concurrent use and return defensive copies so callers never share memory
// with the store.
package memory

import (
	"context"
	"slices"
	"sync"

	"pulse/internal/domain/entity"
	"pulse/internal/domain/repository"

	"github.com/google/uuid"
)

type userRepository struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]*entity.User
	order []uuid.UUID
}

// NewUserRepository creates an empty in-memory user store.
func NewUserRepository() repository.UserRepository {
	return &userRepository{byID: make(map[uuid.UUID]*entity.User)}
}

func cloneUser(u *entity.User) *entity.User {
	cp := *u
	cp.Interests = slices.Clone(u.Interests)

	return &cp
}

func (r *userRepository) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[user.ID]; !ok {
		r.order = append(r.order, user.ID)
	}
	r.byID[user.ID] = cloneUser(user)

	return nil
}

func (r *userRepository) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	r.byID[user.ID] = cloneUser(user)

	return nil
}

func (r *userRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return cloneUser(user), nil
}

func (r *userRepository) FindByPhone(_ context.Context, phone string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if user := r.byID[id]; user.Phone == phone {
			return cloneUser(user), nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *userRepository) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*entity.User, 0, len(ids))
	for _, id := range ids {
		if user, ok := r.byID[id]; ok {
			users = append(users, cloneUser(user))
		}
	}

	return users, nil
}

func (r *userRepository) All(_ context.Context) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*entity.User, 0, len(r.order))
	for _, id := range r.order {
		users = append(users, cloneUser(r.byID[id]))
	}

	return users, nil
}
