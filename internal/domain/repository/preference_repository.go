package repository

import (
	"context"

	"tastebud/internal/domain/entity"

	"github.com/google/uuid"
)

// PreferenceRepository is the single generic relation holding every (profile, tag) score.
type PreferenceRepository interface {
	// AddScore atomically adds delta to the score of (profileID, tag), creating the entry at delta when absent.
	AddScore(ctx context.Context, profileID uuid.UUID, tag entity.Tag, delta int) error

	// ListByProfile returns every entry of a profile, regardless of score.
	ListByProfile(ctx context.Context, profileID uuid.UUID) ([]*entity.PreferenceEntry, error)

	// SetScore overwrites the score of an existing entry, or returns ErrPreferenceNotFound.
	SetScore(ctx context.Context, profileID uuid.UUID, tagID int64, score int) error
}
