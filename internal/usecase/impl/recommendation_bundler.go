package impl

import (
	"tastebud/internal/domain/entity"
)

// BuildUserContext serializes a profile and every one of its preference entries, grouped by dimension.
// Nothing is filtered: zero and negative scores are signal too. A nil profile yields an empty context.
func BuildUserContext(profile *entity.UserProfile, entries []*entity.PreferenceEntry) entity.UserContext {
	userCtx := entity.UserContext{
		Preferences: make(map[entity.Dimension][]entity.PreferenceSignal, len(entity.Dimensions)),
	}
	for _, dim := range entity.Dimensions {
		userCtx.Preferences[dim] = []entity.PreferenceSignal{}
	}

	if profile != nil {
		userCtx.HeightCm = profile.HeightCm
		userCtx.WeightKg = profile.WeightKg
		userCtx.Age = profile.Age
		userCtx.Gender = string(profile.Gender)
		userCtx.ActivityLevel = string(profile.ActivityLevel)
		userCtx.Memo = profile.Memo
	}

	for _, entry := range entries {
		dim := entry.Tag.Dimension
		userCtx.Preferences[dim] = append(userCtx.Preferences[dim], entity.PreferenceSignal{
			Label: entry.Tag.Label,
			Score: entry.Score,
		})
	}

	return userCtx
}

// BuildCatalogSnapshot lists each restaurant with its active items in the order given.
// Inactive items are left out even if present in itemsByRestaurant.
func BuildCatalogSnapshot(restaurants []*entity.Restaurant, itemsByRestaurant map[int64][]*entity.Item) entity.CatalogSnapshot {
	snapshot := make(entity.CatalogSnapshot, 0, len(restaurants))
	for _, restaurant := range restaurants {
		menu := itemsByRestaurant[restaurant.ID]
		rs := entity.RestaurantSnapshot{
			ID:    restaurant.ID,
			Name:  restaurant.Name,
			Items: make([]entity.ItemSnapshot, 0, len(menu)),
		}
		for _, item := range menu {
			if !item.IsActive {
				continue
			}
			rs.Items = append(rs.Items, snapshotItem(item))
		}
		snapshot = append(snapshot, rs)
	}

	return snapshot
}

func snapshotItem(item *entity.Item) entity.ItemSnapshot {
	snap := entity.ItemSnapshot{
		ID:         item.ID,
		Name:       item.Name,
		Price:      item.Price.InexactFloat64(),
		Cuisines:   labels(item.TagsOf(entity.DimensionCuisine)),
		Proteins:   labels(item.TagsOf(entity.DimensionProtein)),
		MealTypes:  labels(item.TagsOf(entity.DimensionMealType)),
		Flavors:    labels(item.TagsOf(entity.DimensionFlavor)),
		Allergens:  labels(item.TagsOf(entity.DimensionAllergen)),
		Nutritions: labels(item.TagsOf(entity.DimensionNutrition)),
	}
	if item.Spiciness != nil {
		label := item.Spiciness.Label
		snap.Spiciness = &label
	}

	return snap
}

func labels(tags []entity.Tag) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		out = append(out, tag.Label)
	}

	return out
}
