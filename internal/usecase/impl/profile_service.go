package impl

import (
	"context"
	"fmt"
	"log/slog"

	deliverycontext "tastebud/internal/delivery/context"
	"tastebud/internal/domain/entity"
	domainerrors "tastebud/internal/domain/errors"
	"tastebud/internal/domain/repository"
	"tastebud/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	maxHeightCm = 300
	maxWeightKg = 500
	maxAge      = 150
)

type profileService struct {
	txManager   repository.TransactionManager
	profileRepo repository.ProfileRepository
	prefRepo    repository.PreferenceRepository
	catalogRepo repository.CatalogRepository
	logger      *slog.Logger
}

// ProfileServiceParams holds dependencies for ProfileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ProfileRepo repository.ProfileRepository
	PrefRepo    repository.PreferenceRepository
	CatalogRepo repository.CatalogRepository
	Logger      *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		txManager:   params.TxManager,
		profileRepo: params.ProfileRepo,
		prefRepo:    params.PrefRepo,
		catalogRepo: params.CatalogRepo,
		logger:      params.Logger,
	}
}

func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*usecase.ProfileView, error) {
	profile, err := srv.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	return srv.view(ctx, profile)
}

func (srv *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, input *usecase.UpdateProfileInput) (*usecase.ProfileView, error) {
	if err := validateProfileInput(input); err != nil {
		return nil, err
	}

	var profile *entity.UserProfile
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		profileRepo := repoFactory.NewProfileRepository()

		current, err := profileRepo.FindByUserID(ctx, userID)
		if errors.Is(err, domainerrors.ErrProfileNotFound) {
			current = &entity.UserProfile{UserID: userID}
			if err := profileRepo.Create(ctx, current); err != nil {
				return errors.Wrap(err, "failed to create profile")
			}
		} else if err != nil {
			return errors.Wrap(err, "failed to load profile")
		}

		applyProfileInput(current, input)
		if err := profileRepo.Update(ctx, current); err != nil {
			return errors.Wrap(err, "failed to update profile")
		}
		profile = current

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Profile updated", slog.Any("userID", userID))

	return srv.view(ctx, profile)
}

// MutePreference zeroes an existing entry. Later orders raise the score again.
func (srv *profileService) MutePreference(ctx context.Context, userID uuid.UUID, input *usecase.MutePreferenceInput) error {
	if !input.Dimension.IsValid() {
		return domainerrors.ErrValidationFailed.WithDetails(fmt.Sprintf("unknown dimension %q", input.Dimension))
	}

	tag, err := srv.catalogRepo.FindTag(ctx, input.Dimension, input.TagKey)
	if err != nil {
		return err
	}

	if err := srv.prefRepo.SetScore(ctx, userID, tag.ID, 0); err != nil {
		return err
	}

	srv.log(ctx).Info("Preference muted",
		slog.Any("userID", userID),
		slog.String("dimension", input.Dimension.String()),
		slog.String("tag", input.TagKey),
	)

	return nil
}

// getOrCreate returns the user's profile, creating an empty one on first access.
// A concurrent first access that wins the insert is tolerated by reading again.
func (srv *profileService) getOrCreate(ctx context.Context, userID uuid.UUID) (*entity.UserProfile, error) {
	profile, err := srv.profileRepo.FindByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, domainerrors.ErrProfileNotFound) {
		return nil, errors.Wrap(err, "failed to load profile")
	}

	profile = &entity.UserProfile{UserID: userID}
	if err := srv.profileRepo.Create(ctx, profile); err != nil {
		if errors.Is(err, domainerrors.ErrConflict) {
			return srv.profileRepo.FindByUserID(ctx, userID)
		}

		return nil, errors.Wrap(err, "failed to create profile")
	}

	srv.log(ctx).Info("Profile created on first access", slog.Any("userID", userID))

	return profile, nil
}

// view attaches the liked entries, grouped by dimension. Entries with a score of zero or below are hidden.
func (srv *profileService) view(ctx context.Context, profile *entity.UserProfile) (*usecase.ProfileView, error) {
	entries, err := srv.prefRepo.ListByProfile(ctx, profile.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load preferences")
	}

	liked := make(map[entity.Dimension][]*entity.PreferenceEntry, len(entity.Dimensions))
	for _, dim := range entity.Dimensions {
		liked[dim] = []*entity.PreferenceEntry{}
	}
	for _, entry := range entries {
		if entry.IsLiked() {
			liked[entry.Tag.Dimension] = append(liked[entry.Tag.Dimension], entry)
		}
	}

	return &usecase.ProfileView{Profile: profile, Liked: liked}, nil
}

func validateProfileInput(input *usecase.UpdateProfileInput) error {
	switch {
	case input.HeightCm != nil && (*input.HeightCm <= 0 || *input.HeightCm > maxHeightCm):
		return domainerrors.ErrValidationFailed.WithDetails("height_cm out of range")
	case input.WeightKg != nil && (*input.WeightKg <= 0 || *input.WeightKg > maxWeightKg):
		return domainerrors.ErrValidationFailed.WithDetails("weight_kg out of range")
	case input.Age != nil && (*input.Age < 0 || *input.Age > maxAge):
		return domainerrors.ErrValidationFailed.WithDetails("age out of range")
	case input.Gender != nil && !input.Gender.IsValid():
		return domainerrors.ErrValidationFailed.WithDetails("unknown gender")
	case input.ActivityLevel != nil && !input.ActivityLevel.IsValid():
		return domainerrors.ErrValidationFailed.WithDetails("unknown activity level")
	}

	return nil
}

func applyProfileInput(profile *entity.UserProfile, input *usecase.UpdateProfileInput) {
	if input.HeightCm != nil {
		profile.HeightCm = input.HeightCm
	}
	if input.WeightKg != nil {
		profile.WeightKg = input.WeightKg
	}
	if input.Age != nil {
		profile.Age = input.Age
	}
	if input.Gender != nil {
		profile.Gender = *input.Gender
	}
	if input.ActivityLevel != nil {
		profile.ActivityLevel = *input.ActivityLevel
	}
	if input.Memo != nil {
		profile.Memo = *input.Memo
	}
}
