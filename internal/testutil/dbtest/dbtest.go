// Package dbtest opens migrated in-memory SQLite databases for repository and use case tests.
package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"unicode"

	"tastebud/internal/domain/entity"
	"tastebud/internal/infra/persistence/model"
	"tastebud/internal/infra/persistence/postgres"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// New returns a fresh, migrated database with the default tag vocabulary seeded.
// The pool is limited to one connection, so callers must not read outside a running transaction.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}

		return '_'
	}, t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_foreign_keys=1", name, dbSeq.Add(1))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, postgres.Migrate(context.Background(), db, true))

	return db
}

// Tag returns the seeded tag identified by (dimension, key).
func Tag(t testing.TB, db *gorm.DB, dim entity.Dimension, key string) entity.Tag {
	t.Helper()

	var tagM model.TagModel
	require.NoError(t, db.Where("dimension = ? AND key = ?", dim.String(), key).First(&tagM).Error)

	return entity.Tag{ID: tagM.ID, Dimension: dim, Key: tagM.Key, Label: tagM.Label}
}

// User inserts a customer account, optionally with an empty profile.
func User(t testing.TB, db *gorm.DB, withProfile bool) uuid.UUID {
	t.Helper()

	userM := &model.UserModel{
		Email: fmt.Sprintf("user-%d@example.com", dbSeq.Add(1)),
		Name:  "Test User",
		Role:  entity.RoleCustomer.String(),
	}
	require.NoError(t, db.Create(userM).Error)

	if withProfile {
		require.NoError(t, db.Create(&model.UserProfileModel{UserID: userM.ID}).Error)
	}

	return userM.ID
}

// Restaurant inserts a restaurant at the given location.
func Restaurant(t testing.TB, db *gorm.DB, name string, active bool, lat, lng float64) int64 {
	t.Helper()

	restaurantM := &model.RestaurantModel{
		Name:      name,
		Address:   name + " street",
		Latitude:  lat,
		Longitude: lng,
		PlaceID:   fmt.Sprintf("place-%d", dbSeq.Add(1)),
		IsActive:  active,
	}
	require.NoError(t, db.Create(restaurantM).Error)

	return restaurantM.ID
}

// Item inserts an item with the given price and tags. A spiciness tag, if present, becomes the single spiciness reference.
func Item(t testing.TB, db *gorm.DB, restaurantID int64, name, price string, active bool, tags ...entity.Tag) int64 {
	t.Helper()

	itemM := &model.ItemModel{
		RestaurantID: restaurantID,
		Name:         name,
		Price:        decimal.RequireFromString(price),
		IsActive:     active,
	}

	var links []entity.Tag
	for _, tag := range tags {
		if tag.Dimension == entity.DimensionSpiciness {
			id := tag.ID
			itemM.SpicinessTagID = &id

			continue
		}
		links = append(links, tag)
	}

	require.NoError(t, db.Omit("Tags", "Spiciness", "Restaurant").Create(itemM).Error)
	for _, tag := range links {
		require.NoError(t, db.Create(&model.ItemTagModel{ItemID: itemM.ID, TagID: tag.ID}).Error)
	}

	return itemM.ID
}

// Score returns the stored score of (profile, tag) and whether the entry exists.
func Score(t testing.TB, db *gorm.DB, profileID uuid.UUID, tagID int64) (int, bool) {
	t.Helper()

	var entries []model.PreferenceEntryModel
	require.NoError(t, db.Where("profile_id = ? AND tag_id = ?", profileID, tagID).Find(&entries).Error)
	if len(entries) == 0 {
		return 0, false
	}

	return entries[0].Score, true
}

// Count returns the number of rows of the given model.
func Count(t testing.TB, db *gorm.DB, m any) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(m).Count(&n).Error)

	return n
}
