// Package repository declares the persistence ports of the ordering domain.
// Implementations bound to a transaction come from RepositoryFactory.
package repository

import (
	"context"

	"tastebud/internal/domain/entity"

	"github.com/google/uuid"
)

// UserRepository stores accounts. Credentials live in AuthRepository and taste profiles in ProfileRepository.
type UserRepository interface {
	// FindByID returns ErrUserNotFound for unknown ids.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// Create fills in the generated id and timestamps.
	Create(ctx context.Context, user *entity.User) error
}
