package usecase

import (
	"context"

	"tastebud/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NearbyInput is a search circle around a point.
type NearbyInput struct {
	Latitude  float64
	Longitude float64
	RadiusKm  float64
}

// NearbyRestaurant is an active restaurant with its distance from the search point.
type NearbyRestaurant struct {
	Restaurant *entity.Restaurant
	DistanceM  float64
}

// TagRef names a tag by its dimension and key.
type TagRef struct {
	Dimension entity.Dimension
	Key       string
}

// ItemInput carries the merchant-editable fields of an item.
type ItemInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	IsActive    bool
	Tags        []TagRef
}

// CatalogUsecase covers restaurant discovery, menus, the tag vocabulary and merchant menu editing.
type CatalogUsecase interface {
	ResolveRestaurants(ctx context.Context, placeIDs []string) ([]*entity.Restaurant, error)
	NearbyRestaurants(ctx context.Context, input *NearbyInput) ([]*NearbyRestaurant, error)
	ListItems(ctx context.Context, restaurantID int64) ([]*entity.Item, error)
	ListTags(ctx context.Context) (map[entity.Dimension][]entity.Tag, error)
	CreateItem(ctx context.Context, merchantID uuid.UUID, restaurantID int64, input *ItemInput) (*entity.Item, error)
	UpdateItem(ctx context.Context, merchantID uuid.UUID, restaurantID, itemID int64, input *ItemInput) (*entity.Item, error)
}
