// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers
// and the infrastructure layer; the shipped implementation is an in-memory
// store, but nothing above this boundary may assume that.
package repository

import (
	"context"
	"errors"

	"pulse/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is returned when no user matches the lookup.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
type UserRepository interface {
	// Create persists a new user.
	Create(ctx context.Context, user *entity.User) error

	// Update replaces the stored record for user.ID.
	Update(ctx context.Context, user *entity.User) error

	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByPhone retrieves a user by phone number. The scan is linear and
	// the first match wins; phone uniqueness is the caller's concern at
	// registration time.
	FindByPhone(ctx context.Context, phone string) (*entity.User, error)

	// FindByIDs retrieves the users for the given IDs, skipping any that no
	// longer resolve. The result preserves the input order.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.User, error)

	// All returns every registered user in insertion order. Broadcast
	// fan-out is the only caller; the demo-scale store makes this cheap.
	All(ctx context.Context) ([]*entity.User, error)
}
