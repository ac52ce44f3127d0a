package postgres

import (
	"context"
	"time"

	"tastebud/internal/domain/entity"
	domainerrors "tastebud/internal/domain/errors"
	"tastebud/internal/domain/repository"
	"tastebud/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type preferenceRepository struct {
	db *gorm.DB
}

// NewPreferenceRepository is the constructor for preferenceRepository.
func NewPreferenceRepository(db *gorm.DB) repository.PreferenceRepository {
	return &preferenceRepository{db: db}
}

// AddScore issues a single INSERT ... ON CONFLICT (profile_id, tag_id) DO UPDATE, so concurrent
// orders of the same user never lose an increment.
func (repo *preferenceRepository) AddScore(ctx context.Context, profileID uuid.UUID, tag entity.Tag, delta int) error {
	now := time.Now()
	entryM := &model.PreferenceEntryModel{
		ProfileID: profileID,
		Dimension: tag.Dimension.String(),
		TagID:     tag.ID,
		Score:     delta,
		UpdatedAt: now,
	}

	err := repo.db.WithContext(ctx).
		Omit("Tag").
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "profile_id"}, {Name: "tag_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"score":      gorm.Expr("preference_entries.score + excluded.score"),
				"updated_at": now,
			}),
		}).
		Create(entryM).Error
	if err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrProfileNotFound.WrapMessage("invalid profile or tag reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert preference")
	}

	return nil
}

func (repo *preferenceRepository) ListByProfile(ctx context.Context, profileID uuid.UUID) ([]*entity.PreferenceEntry, error) {
	var entryMs []model.PreferenceEntryModel
	err := repo.db.WithContext(ctx).
		Preload("Tag").
		Where("profile_id = ?", profileID).
		Order("dimension").
		Order("score DESC").
		Order("tag_id").
		Find(&entryMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list preferences")
	}

	entries := make([]*entity.PreferenceEntry, 0, len(entryMs))
	for i := range entryMs {
		entries = append(entries, toPreferenceDomain(&entryMs[i]))
	}

	return entries, nil
}

func (repo *preferenceRepository) SetScore(ctx context.Context, profileID uuid.UUID, tagID int64, score int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.PreferenceEntryModel{}).
		Where("profile_id = ? AND tag_id = ?", profileID, tagID).
		Updates(map[string]any{
			"score":      score,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to set preference score")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrPreferenceNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toPreferenceDomain(data *model.PreferenceEntryModel) *entity.PreferenceEntry {
	entry := &entity.PreferenceEntry{
		ID:        data.ID,
		ProfileID: data.ProfileID,
		Score:     data.Score,
		UpdatedAt: data.UpdatedAt,
		Tag: entity.Tag{
			ID:        data.TagID,
			Dimension: entity.Dimension(data.Dimension),
		},
	}
	if data.Tag != nil {
		entry.Tag = toTagDomain(data.Tag)
	}

	return entry
}
