package postgres_test

import (
	"context"
	"testing"

	"tastebud/internal/domain/entity"
	domainerrors "tastebud/internal/domain/errors"
	"tastebud/internal/infra/persistence/model"
	"tastebud/internal/infra/persistence/postgres"
	"tastebud/internal/testutil/dbtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferenceRepository_AddScoreCreatesThenAccumulates(t *testing.T) {
	db := dbtest.New(t)
	repo := postgres.NewPreferenceRepository(db)
	ctx := context.Background()

	profileID := dbtest.User(t, db, true)
	chinese := dbtest.Tag(t, db, entity.DimensionCuisine, "chinese")

	require.NoError(t, repo.AddScore(ctx, profileID, chinese, 2))
	require.NoError(t, repo.AddScore(ctx, profileID, chinese, 3))

	score, ok := dbtest.Score(t, db, profileID, chinese.ID)
	require.True(t, ok)
	assert.Equal(t, 5, score)
	assert.EqualValues(t, 1, dbtest.Count(t, db, &model.PreferenceEntryModel{}))
}

func TestPreferenceRepository_AddScoreKeepsDimension(t *testing.T) {
	db := dbtest.New(t)
	repo := postgres.NewPreferenceRepository(db)
	ctx := context.Background()

	profileID := dbtest.User(t, db, true)
	hot := dbtest.Tag(t, db, entity.DimensionSpiciness, "hot")
	require.NoError(t, repo.AddScore(ctx, profileID, hot, 1))

	entries, err := repo.ListByProfile(ctx, profileID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.DimensionSpiciness, entries[0].Tag.Dimension)
	assert.Equal(t, "Hot", entries[0].Tag.Label)
	assert.Equal(t, 1, entries[0].Score)
}

func TestPreferenceRepository_SetScore(t *testing.T) {
	db := dbtest.New(t)
	repo := postgres.NewPreferenceRepository(db)
	ctx := context.Background()

	profileID := dbtest.User(t, db, true)
	beef := dbtest.Tag(t, db, entity.DimensionProtein, "beef")

	err := repo.SetScore(ctx, profileID, beef.ID, 0)
	assert.ErrorIs(t, err, domainerrors.ErrPreferenceNotFound)

	require.NoError(t, repo.AddScore(ctx, profileID, beef, 4))
	require.NoError(t, repo.SetScore(ctx, profileID, beef.ID, 0))

	score, ok := dbtest.Score(t, db, profileID, beef.ID)
	require.True(t, ok)
	assert.Equal(t, 0, score)

	// A muted entry keeps accumulating from zero.
	require.NoError(t, repo.AddScore(ctx, profileID, beef, 1))
	score, _ = dbtest.Score(t, db, profileID, beef.ID)
	assert.Equal(t, 1, score)
}
