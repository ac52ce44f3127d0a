package impl

import (
	"testing"

	"tastebud/internal/domain/entity"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildUserContext_KeepsEveryScore(t *testing.T) {
	height := 172.5
	age := 31
	profile := &entity.UserProfile{
		HeightCm:      &height,
		Age:           &age,
		Gender:        entity.GenderFemale,
		ActivityLevel: entity.ActivityLevelActive,
		Memo:          "no peanuts please",
	}
	entries := []*entity.PreferenceEntry{
		{Tag: entity.Tag{ID: 1, Dimension: entity.DimensionCuisine, Key: "chinese", Label: "Chinese"}, Score: 3},
		{Tag: entity.Tag{ID: 2, Dimension: entity.DimensionCuisine, Key: "korean", Label: "Korean"}, Score: 0},
		{Tag: entity.Tag{ID: 3, Dimension: entity.DimensionAllergen, Key: "peanuts", Label: "Peanuts"}, Score: -2},
	}

	userCtx := BuildUserContext(profile, entries)

	assert.Equal(t, &height, userCtx.HeightCm)
	assert.Nil(t, userCtx.WeightKg)
	assert.Equal(t, "female", userCtx.Gender)
	assert.Equal(t, "no peanuts please", userCtx.Memo)
	assert.Equal(t, []entity.PreferenceSignal{{Label: "Chinese", Score: 3}, {Label: "Korean", Score: 0}},
		userCtx.Preferences[entity.DimensionCuisine])
	assert.Equal(t, []entity.PreferenceSignal{{Label: "Peanuts", Score: -2}}, userCtx.Preferences[entity.DimensionAllergen])
	assert.Len(t, userCtx.Preferences, len(entity.Dimensions))
	assert.Empty(t, userCtx.Preferences[entity.DimensionFlavor])
}

func TestBuildUserContext_WithoutProfile(t *testing.T) {
	userCtx := BuildUserContext(nil, nil)

	assert.Empty(t, userCtx.Memo)
	assert.Len(t, userCtx.Preferences, len(entity.Dimensions))
}

func TestBuildCatalogSnapshot_FlattensTags(t *testing.T) {
	hot := entity.Tag{ID: 10, Dimension: entity.DimensionSpiciness, Key: "hot", Label: "Hot"}
	restaurants := []*entity.Restaurant{{ID: 1, Name: "Sichuan Kitchen"}, {ID: 2, Name: "Empty Shop"}}
	items := map[int64][]*entity.Item{
		1: {
			{
				ID: 100, RestaurantID: 1, Name: "Dan Dan Noodles", Price: decimal.RequireFromString("11.90"), IsActive: true,
				Spiciness: &hot,
				Tags: []entity.Tag{
					{ID: 1, Dimension: entity.DimensionCuisine, Label: "Chinese"},
					{ID: 2, Dimension: entity.DimensionProtein, Label: "Pork"},
					{ID: 3, Dimension: entity.DimensionAllergen, Label: "Peanuts"},
					{ID: 4, Dimension: entity.DimensionAllergen, Label: "Wheat"},
				},
			},
			{ID: 101, RestaurantID: 1, Name: "Cold Cucumber", Price: decimal.RequireFromString("4.00"), IsActive: true},
			{ID: 102, RestaurantID: 1, Name: "Off Menu", Price: decimal.RequireFromString("1.00"), IsActive: false},
		},
	}

	snapshot := BuildCatalogSnapshot(restaurants, items)
	require.Len(t, snapshot, 2)

	first := snapshot[0]
	require.Len(t, first.Items, 2)
	noodles := first.Items[0]
	assert.InDelta(t, 11.9, noodles.Price, 1e-9)
	assert.Equal(t, []string{"Chinese"}, noodles.Cuisines)
	assert.Equal(t, []string{"Pork"}, noodles.Proteins)
	assert.Equal(t, []string{"Peanuts", "Wheat"}, noodles.Allergens)
	require.NotNil(t, noodles.Spiciness)
	assert.Equal(t, "Hot", *noodles.Spiciness)

	cucumber := first.Items[1]
	assert.Nil(t, cucumber.Spiciness)
	assert.Empty(t, cucumber.Cuisines)

	assert.Empty(t, snapshot[1].Items)

	raw, err := json.Marshal(cucumber)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":101,"name":"Cold Cucumber","price":4,"cuisines":[],"proteins":[],"meal_types":[],"flavors":[],"allergens":[],"nutritions":[]}`, string(raw))
}
