package repository

import (
	"context"

	"tastebud/internal/domain/entity"

	"github.com/google/uuid"
)

// ProfileRepository persists user profiles.
type ProfileRepository interface {
	// FindByUserID returns the profile of a user, or ErrProfileNotFound.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserProfile, error)

	// Create persists a new profile. Creating a second profile for the same user is a conflict.
	Create(ctx context.Context, profile *entity.UserProfile) error

	// Update overwrites the editable fields of an existing profile.
	Update(ctx context.Context, profile *entity.UserProfile) error
}
