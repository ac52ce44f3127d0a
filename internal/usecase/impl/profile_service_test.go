package impl

import (
	"context"
	"testing"

	"tastebud/internal/domain/entity"
	domainerrors "tastebud/internal/domain/errors"
	"tastebud/internal/infra/persistence/model"
	"tastebud/internal/infra/persistence/postgres"
	"tastebud/internal/testutil/dbtest"
	"tastebud/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newProfileService(db *gorm.DB) usecase.ProfileUsecase {
	return NewProfileService(ProfileServiceParams{
		TxManager:   postgres.NewTransactionManager(db),
		ProfileRepo: postgres.NewProfileRepository(db),
		PrefRepo:    postgres.NewPreferenceRepository(db),
		CatalogRepo: postgres.NewCatalogRepository(db),
		Logger:      newDiscardLogger(),
	})
}

func TestProfileService_GetProfileCreatesLazily(t *testing.T) {
	db := dbtest.New(t)
	userID := dbtest.User(t, db, false)
	profiles := newProfileService(db)
	ctx := context.Background()

	view, err := profiles.GetProfile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, userID, view.Profile.UserID)
	assert.Len(t, view.Liked, len(entity.Dimensions))

	_, err = profiles.GetProfile(ctx, userID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, dbtest.Count(t, db, &model.UserProfileModel{}))
}

func TestProfileService_LikedHidesNonPositiveScores(t *testing.T) {
	db := dbtest.New(t)
	userID := dbtest.User(t, db, true)
	chinese := dbtest.Tag(t, db, entity.DimensionCuisine, "chinese")
	korean := dbtest.Tag(t, db, entity.DimensionCuisine, "korean")
	prefRepo := postgres.NewPreferenceRepository(db)
	ctx := context.Background()

	require.NoError(t, prefRepo.AddScore(ctx, userID, chinese, 3))
	require.NoError(t, prefRepo.AddScore(ctx, userID, korean, -1))

	view, err := newProfileService(db).GetProfile(ctx, userID)
	require.NoError(t, err)

	liked := view.Liked[entity.DimensionCuisine]
	require.Len(t, liked, 1)
	assert.Equal(t, "chinese", liked[0].Tag.Key)
	assert.Equal(t, 3, liked[0].Score)
}

func TestProfileService_MuteThenReaccumulate(t *testing.T) {
	db := dbtest.New(t)
	m := seedMenu(t, db)
	userID := dbtest.User(t, db, true)
	profiles := newProfileService(db)
	orders := newOrderService(db, postgres.NewTransactionManager(db), quietPublisher(t))
	ctx := context.Background()

	_, err := orders.CreateOrder(ctx, userID, &usecase.CreateOrderInput{RestaurantID: m.restaurant, Lines: lines(m.i1, 2)})
	require.NoError(t, err)

	require.NoError(t, profiles.MutePreference(ctx, userID, &usecase.MutePreferenceInput{
		Dimension: entity.DimensionCuisine,
		TagKey:    "chinese",
	}))

	score, ok := dbtest.Score(t, db, userID, m.chinese.ID)
	require.True(t, ok, "muting keeps the row")
	assert.Zero(t, score)

	view, err := profiles.GetProfile(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, view.Liked[entity.DimensionCuisine])

	_, err = orders.CreateOrder(ctx, userID, &usecase.CreateOrderInput{RestaurantID: m.restaurant, Lines: lines(m.i1, 1)})
	require.NoError(t, err)

	score, _ = dbtest.Score(t, db, userID, m.chinese.ID)
	assert.Equal(t, 1, score)
}

func TestProfileService_MuteErrors(t *testing.T) {
	db := dbtest.New(t)
	userID := dbtest.User(t, db, true)
	profiles := newProfileService(db)
	ctx := context.Background()

	err := profiles.MutePreference(ctx, userID, &usecase.MutePreferenceInput{Dimension: "texture", TagKey: "crispy"})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	err = profiles.MutePreference(ctx, userID, &usecase.MutePreferenceInput{Dimension: entity.DimensionCuisine, TagKey: "martian"})
	assert.ErrorIs(t, err, domainerrors.ErrTagNotFound)

	err = profiles.MutePreference(ctx, userID, &usecase.MutePreferenceInput{Dimension: entity.DimensionCuisine, TagKey: "chinese"})
	assert.ErrorIs(t, err, domainerrors.ErrPreferenceNotFound)
}

func TestProfileService_UpdateProfile(t *testing.T) {
	db := dbtest.New(t)
	userID := dbtest.User(t, db, false)
	profiles := newProfileService(db)
	ctx := context.Background()

	height := 180.0
	gender := entity.GenderMale
	memo := "vegetarian on weekdays"
	view, err := profiles.UpdateProfile(ctx, userID, &usecase.UpdateProfileInput{
		HeightCm: &height,
		Gender:   &gender,
		Memo:     &memo,
	})
	require.NoError(t, err)
	require.NotNil(t, view.Profile.HeightCm)
	assert.InDelta(t, 180.0, *view.Profile.HeightCm, 1e-9)

	age := 40
	_, err = profiles.UpdateProfile(ctx, userID, &usecase.UpdateProfileInput{Age: &age})
	require.NoError(t, err)

	stored, err := postgres.NewProfileRepository(db).FindByUserID(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, stored.Age)
	assert.Equal(t, 40, *stored.Age)
	assert.Equal(t, entity.GenderMale, stored.Gender)
	assert.Equal(t, memo, stored.Memo)

	badAge := 400
	_, err = profiles.UpdateProfile(ctx, userID, &usecase.UpdateProfileInput{Age: &badAge})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	badLevel := entity.ActivityLevel("couch")
	_, err = profiles.UpdateProfile(ctx, userID, &usecase.UpdateProfileInput{ActivityLevel: &badLevel})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}
