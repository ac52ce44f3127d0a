package postgres

import (
	"context"

	"tastebud/internal/domain/entity"
	"tastebud/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type tagSeed struct {
	key   string
	label string
}

// defaultTags is the reference vocabulary loaded by SeedTags.
var defaultTags = map[entity.Dimension][]tagSeed{
	entity.DimensionCuisine: {
		{"chinese", "Chinese"},
		{"japanese", "Japanese"},
		{"korean", "Korean"},
		{"american", "American"},
		{"mexican", "Mexican"},
		{"indian", "Indian"},
	},
	entity.DimensionProtein: {
		{"chicken", "Chicken"},
		{"beef", "Beef"},
		{"pork", "Pork"},
		{"fish", "Fish"},
		{"shrimp", "Shrimp"},
		{"tofu", "Tofu"},
		{"egg", "Egg"},
	},
	entity.DimensionSpiciness: {
		{"none", "Not spicy"},
		{"mild", "Mild"},
		{"medium", "Medium"},
		{"hot", "Hot"},
		{"extra_hot", "Extra hot"},
	},
	entity.DimensionMealType: {
		{"main", "Main dish"},
		{"side", "Side"},
		{"drink", "Drink"},
		{"dessert", "Dessert"},
		{"combo", "Combo"},
	},
	entity.DimensionFlavor: {
		{"sweet", "Sweet"},
		{"sour", "Sour"},
		{"salty", "Salty"},
		{"spicy", "Spicy"},
		{"umami", "Umami"},
	},
	entity.DimensionAllergen: {
		{"milk", "Milk"},
		{"eggs", "Eggs"},
		{"fish", "Fish"},
		{"crustacean_shellfish", "Crustacean shellfish"},
		{"tree_nuts", "Tree nuts"},
		{"peanuts", "Peanuts"},
		{"wheat", "Wheat"},
		{"soybeans", "Soybeans"},
		{"sesame", "Sesame"},
	},
	entity.DimensionNutrition: {
		{"high_protein", "High protein"},
		{"low_carb", "Low carb"},
		{"low_fat", "Low fat"},
		{"high_fiber", "High fiber"},
		{"low_calorie", "Low calorie"},
	},
}

// Migrate creates or updates the schema and optionally seeds the tag vocabulary.
func Migrate(ctx context.Context, db *gorm.DB, seedTags bool) error {
	if err := db.WithContext(ctx).AutoMigrate(model.All()...); err != nil {
		return errors.Wrap(err, "failed to migrate schema")
	}

	if !seedTags {
		return nil
	}

	return SeedTags(ctx, db)
}

// SeedTags inserts the default tag vocabulary. Existing (dimension, key) pairs are left untouched.
func SeedTags(ctx context.Context, db *gorm.DB) error {
	rows := make([]model.TagModel, 0, 48)
	for _, dim := range entity.Dimensions {
		for _, seed := range defaultTags[dim] {
			rows = append(rows, model.TagModel{
				Dimension: dim.String(),
				Key:       seed.key,
				Label:     seed.label,
			})
		}
	}

	err := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "dimension"}, {Name: "key"}},
			DoNothing: true,
		}).
		Create(&rows).Error
	if err != nil {
		return errors.Wrap(err, "failed to seed tags")
	}

	return nil
}
