package impl

import (
	"context"
	"testing"

	"tastebud/internal/domain/entity"
	"tastebud/internal/domain/repository"
	"tastebud/internal/infra/persistence/postgres"
	"tastebud/internal/testutil/dbtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoringEngine_AppliesQuantityPerTag(t *testing.T) {
	db := dbtest.New(t)
	userID := dbtest.User(t, db, true)
	chinese := dbtest.Tag(t, db, entity.DimensionCuisine, "chinese")
	mild := dbtest.Tag(t, db, entity.DimensionSpiciness, "mild")
	engine := NewScoringEngine(newDiscardLogger())

	order := &entity.Order{
		ID:     1,
		UserID: userID,
		Items: []entity.OrderItem{
			{ItemID: 10, Quantity: 2},
			{ItemID: 11, Quantity: 1},
		},
	}
	items := map[int64]*entity.Item{
		10: {ID: 10, Tags: []entity.Tag{chinese}, Spiciness: &mild},
		11: {ID: 11, Tags: []entity.Tag{chinese}},
	}

	var updated bool
	err := postgres.NewTransactionManager(db).Execute(context.Background(), func(repos repository.RepositoryFactory) error {
		var err error
		updated, err = engine.ApplyOrderToPreferences(context.Background(), repos, order, items)

		return err
	})
	require.NoError(t, err)
	assert.True(t, updated)

	score, _ := dbtest.Score(t, db, userID, chinese.ID)
	assert.Equal(t, 3, score)
	score, _ = dbtest.Score(t, db, userID, mild.ID)
	assert.Equal(t, 2, score)
}

func TestScoringEngine_NoProfileIsSkipped(t *testing.T) {
	db := dbtest.New(t)
	userID := dbtest.User(t, db, false)
	chinese := dbtest.Tag(t, db, entity.DimensionCuisine, "chinese")
	engine := NewScoringEngine(newDiscardLogger())

	order := &entity.Order{UserID: userID, Items: []entity.OrderItem{{ItemID: 10, Quantity: 1}}}
	items := map[int64]*entity.Item{10: {ID: 10, Tags: []entity.Tag{chinese}}}

	var updated bool
	err := postgres.NewTransactionManager(db).Execute(context.Background(), func(repos repository.RepositoryFactory) error {
		var err error
		updated, err = engine.ApplyOrderToPreferences(context.Background(), repos, order, items)

		return err
	})
	require.NoError(t, err)
	assert.False(t, updated)

	_, ok := dbtest.Score(t, db, userID, chinese.ID)
	assert.False(t, ok)
}
