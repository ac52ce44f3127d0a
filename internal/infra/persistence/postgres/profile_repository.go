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
)

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository is the constructor for profileRepository.
func NewProfileRepository(db *gorm.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (repo *profileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserProfile, error) {
	var profileM model.UserProfileModel
	err := repo.db.WithContext(ctx).Where("user_id = ?", userID).First(&profileM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrProfileNotFound
		}

		return nil, errors.Wrap(err, "failed to find profile")
	}

	return toUserProfileDomain(&profileM), nil
}

func (repo *profileRepository) Create(ctx context.Context, profile *entity.UserProfile) error {
	profileM := fromUserProfileDomain(profile)

	if err := repo.db.WithContext(ctx).Create(profileM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("profile already exists")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("invalid user reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create profile")
	}

	profile.CreatedAt = profileM.CreatedAt
	profile.UpdatedAt = profileM.UpdatedAt

	return nil
}

func (repo *profileRepository) Update(ctx context.Context, profile *entity.UserProfile) error {
	profileM := fromUserProfileDomain(profile)
	profileM.UpdatedAt = time.Now()

	result := repo.db.WithContext(ctx).
		Model(&model.UserProfileModel{}).
		Where("user_id = ?", profile.UserID).
		Select("height_cm", "weight_kg", "age", "gender", "activity_level", "memo", "updated_at").
		Updates(profileM)
	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) {
			return domainerrors.ErrValidationFailed.WrapMessage("profile values out of range")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update profile")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrProfileNotFound
	}

	profile.UpdatedAt = profileM.UpdatedAt

	return nil
}

// --- Mapper Functions ---

func toUserProfileDomain(data *model.UserProfileModel) *entity.UserProfile {
	if data == nil {
		return nil
	}

	return &entity.UserProfile{
		UserID:        data.UserID,
		HeightCm:      data.HeightCm,
		WeightKg:      data.WeightKg,
		Age:           data.Age,
		Gender:        entity.Gender(data.Gender),
		ActivityLevel: entity.ActivityLevel(data.ActivityLevel),
		Memo:          data.Memo,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

func fromUserProfileDomain(data *entity.UserProfile) *model.UserProfileModel {
	if data == nil {
		return nil
	}

	return &model.UserProfileModel{
		UserID:        data.UserID,
		HeightCm:      data.HeightCm,
		WeightKg:      data.WeightKg,
		Age:           data.Age,
		Gender:        string(data.Gender),
		ActivityLevel: string(data.ActivityLevel),
		Memo:          data.Memo,
		CreatedAt:     data.CreatedAt,
	}
}
