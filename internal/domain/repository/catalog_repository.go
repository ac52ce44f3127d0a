package repository

import (
	"context"

	"tastebud/internal/domain/entity"
)

// BoundingBox is an axis-aligned lat/lng rectangle used for coarse spatial filtering.
type BoundingBox struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

// CatalogRepository covers restaurants, items and the tag vocabulary.
// Items are always returned with their tags loaded.
type CatalogRepository interface {
	// CreateRestaurant persists a new restaurant.
	CreateRestaurant(ctx context.Context, restaurant *entity.Restaurant) error

	// FindRestaurantByID returns a restaurant regardless of its active flag.
	FindRestaurantByID(ctx context.Context, id int64) (*entity.Restaurant, error)

	// FindActiveRestaurantsByIDs returns the active restaurants among ids, ordered by id.
	FindActiveRestaurantsByIDs(ctx context.Context, ids []int64) ([]*entity.Restaurant, error)

	// FindActiveRestaurantsByPlaceIDs returns the active restaurants matching the external place ids.
	FindActiveRestaurantsByPlaceIDs(ctx context.Context, placeIDs []string) ([]*entity.Restaurant, error)

	// FindActiveRestaurantsInBox returns the active restaurants located inside box.
	FindActiveRestaurantsInBox(ctx context.Context, box BoundingBox) ([]*entity.Restaurant, error)

	// FindItemsByIDs returns the items with the given ids, with RestaurantActive populated.
	// Missing ids are simply absent from the result.
	FindItemsByIDs(ctx context.Context, ids []int64) ([]*entity.Item, error)

	// FindItemByID returns a single item or ErrItemNotFound.
	FindItemByID(ctx context.Context, id int64) (*entity.Item, error)

	// ListActiveItems returns the active items of the given restaurants keyed by restaurant id, ordered by name.
	ListActiveItems(ctx context.Context, restaurantIDs []int64) (map[int64][]*entity.Item, error)

	// CreateItem persists a new item together with its tag links.
	CreateItem(ctx context.Context, item *entity.Item) error

	// UpdateItem overwrites an item's fields and replaces its tag links.
	UpdateItem(ctx context.Context, item *entity.Item) error

	// ListTags returns the full tag vocabulary ordered by dimension and key.
	ListTags(ctx context.Context) ([]entity.Tag, error)

	// FindTagsByIDs returns the tags with the given ids.
	FindTagsByIDs(ctx context.Context, ids []int64) ([]entity.Tag, error)

	// FindTag returns the tag identified by (dimension, key), or ErrTagNotFound.
	FindTag(ctx context.Context, dimension entity.Dimension, key string) (*entity.Tag, error)
}
