package usecase

import (
	"context"

	"tastebud/internal/domain/entity"

	"github.com/google/uuid"
)

// ProfileView is a profile together with the tags it currently likes.
type ProfileView struct {
	Profile *entity.UserProfile
	// Liked holds, per dimension, the entries with a positive score ordered by score descending.
	Liked map[entity.Dimension][]*entity.PreferenceEntry
}

// UpdateProfileInput carries the editable profile fields. Nil fields are left unchanged.
type UpdateProfileInput struct {
	HeightCm      *float64
	WeightKg      *float64
	Age           *int
	Gender        *entity.Gender
	ActivityLevel *entity.ActivityLevel
	Memo          *string
}

// MutePreferenceInput identifies the tag to mute.
type MutePreferenceInput struct {
	Dimension entity.Dimension
	TagKey    string
}

// ProfileUsecase defines the profile and preference display operations.
type ProfileUsecase interface {
	// GetProfile returns the user's profile, creating an empty one on first access.
	GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileView, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input *UpdateProfileInput) (*ProfileView, error)
	// MutePreference forces the score of an existing preference entry to zero.
	MutePreference(ctx context.Context, userID uuid.UUID, input *MutePreferenceInput) error
}
