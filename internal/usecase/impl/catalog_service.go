package impl

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	deliverycontext "tastebud/internal/delivery/context"
	"tastebud/internal/domain/entity"
	domainerrors "tastebud/internal/domain/errors"
	"tastebud/internal/domain/repository"
	"tastebud/internal/usecase"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultNearbyRadiusKm = 2.0
	maxNearbyRadiusKm     = 50.0
)

type catalogService struct {
	txManager   repository.TransactionManager
	catalogRepo repository.CatalogRepository
	logger      *slog.Logger
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	CatalogRepo repository.CatalogRepository
	Logger      *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		txManager:   params.TxManager,
		catalogRepo: params.CatalogRepo,
		logger:      params.Logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *catalogService) ResolveRestaurants(ctx context.Context, placeIDs []string) ([]*entity.Restaurant, error) {
	if len(placeIDs) == 0 {
		return []*entity.Restaurant{}, nil
	}

	return srv.catalogRepo.FindActiveRestaurantsByPlaceIDs(ctx, placeIDs)
}

// NearbyRestaurants prefilters by bounding box in the database, then keeps the restaurants
// within the geodesic radius, nearest first.
func (srv *catalogService) NearbyRestaurants(ctx context.Context, input *usecase.NearbyInput) ([]*usecase.NearbyRestaurant, error) {
	if !entity.ValidCoordinates(input.Latitude, input.Longitude) {
		return nil, domainerrors.ErrInvalidCoordinates
	}

	radiusKm := input.RadiusKm
	if radiusKm <= 0 {
		radiusKm = defaultNearbyRadiusKm
	}
	if radiusKm > maxNearbyRadiusKm {
		return nil, domainerrors.ErrValidationFailed.WithDetails(fmt.Sprintf("radius_km must not exceed %.0f", maxNearbyRadiusKm))
	}
	radiusM := radiusKm * 1000

	center := orb.Point{input.Longitude, input.Latitude}
	bound := geo.NewBoundAroundPoint(center, radiusM)

	restaurants, err := srv.catalogRepo.FindActiveRestaurantsInBox(ctx, repository.BoundingBox{
		MinLat: max(bound.Min.Lat(), -90),
		MaxLat: min(bound.Max.Lat(), 90),
		MinLng: max(bound.Min.Lon(), -180),
		MaxLng: min(bound.Max.Lon(), 180),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to search restaurants")
	}

	nearby := make([]*usecase.NearbyRestaurant, 0, len(restaurants))
	for _, restaurant := range restaurants {
		distance := geo.Distance(center, restaurant.Point())
		if distance > radiusM {
			continue
		}
		nearby = append(nearby, &usecase.NearbyRestaurant{Restaurant: restaurant, DistanceM: distance})
	}

	sort.SliceStable(nearby, func(i, j int) bool {
		return nearby[i].DistanceM < nearby[j].DistanceM
	})

	return nearby, nil
}

// ListItems returns the active menu of an active restaurant, ordered by name.
func (srv *catalogService) ListItems(ctx context.Context, restaurantID int64) ([]*entity.Item, error) {
	restaurant, err := srv.catalogRepo.FindRestaurantByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if !restaurant.IsActive {
		return nil, domainerrors.ErrRestaurantUnavailable
	}

	menus, err := srv.catalogRepo.ListActiveItems(ctx, []int64{restaurantID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list items")
	}
	if menus[restaurantID] == nil {
		return []*entity.Item{}, nil
	}

	return menus[restaurantID], nil
}

func (srv *catalogService) ListTags(ctx context.Context) (map[entity.Dimension][]entity.Tag, error) {
	tags, err := srv.catalogRepo.ListTags(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tags")
	}

	grouped := make(map[entity.Dimension][]entity.Tag, len(entity.Dimensions))
	for _, dim := range entity.Dimensions {
		grouped[dim] = []entity.Tag{}
	}
	for _, tag := range tags {
		grouped[tag.Dimension] = append(grouped[tag.Dimension], tag)
	}

	return grouped, nil
}

func (srv *catalogService) CreateItem(ctx context.Context, merchantID uuid.UUID, restaurantID int64, input *usecase.ItemInput) (*entity.Item, error) {
	if input.Price.IsNegative() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("price must not be negative")
	}

	var created *entity.Item
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		catalogRepo := repoFactory.NewCatalogRepository()

		if err := requireOwner(ctx, catalogRepo, merchantID, restaurantID); err != nil {
			return err
		}

		item := &entity.Item{
			RestaurantID: restaurantID,
			Name:         input.Name,
			Description:  input.Description,
			Price:        input.Price,
			IsActive:     input.IsActive,
		}
		if err := resolveItemTags(ctx, catalogRepo, item, input.Tags); err != nil {
			return err
		}

		if err := catalogRepo.CreateItem(ctx, item); err != nil {
			return err
		}

		reloaded, err := catalogRepo.FindItemByID(ctx, item.ID)
		if err != nil {
			return errors.Wrap(err, "failed to reload item")
		}
		created = reloaded

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Item created",
		slog.Int64("itemID", created.ID),
		slog.Int64("restaurantID", restaurantID),
		slog.Any("merchantID", merchantID),
	)

	return created, nil
}

func (srv *catalogService) UpdateItem(
	ctx context.Context,
	merchantID uuid.UUID,
	restaurantID, itemID int64,
	input *usecase.ItemInput,
) (*entity.Item, error) {
	if input.Price.IsNegative() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("price must not be negative")
	}

	var updated *entity.Item
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		catalogRepo := repoFactory.NewCatalogRepository()

		if err := requireOwner(ctx, catalogRepo, merchantID, restaurantID); err != nil {
			return err
		}

		item, err := catalogRepo.FindItemByID(ctx, itemID)
		if err != nil {
			return err
		}
		if item.RestaurantID != restaurantID {
			return domainerrors.ErrItemNotFound
		}

		item.Name = input.Name
		item.Description = input.Description
		item.Price = input.Price
		item.IsActive = input.IsActive
		if err := resolveItemTags(ctx, catalogRepo, item, input.Tags); err != nil {
			return err
		}

		if err := catalogRepo.UpdateItem(ctx, item); err != nil {
			return err
		}

		reloaded, err := catalogRepo.FindItemByID(ctx, item.ID)
		if err != nil {
			return errors.Wrap(err, "failed to reload item")
		}
		updated = reloaded

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Item updated",
		slog.Int64("itemID", itemID),
		slog.Int64("restaurantID", restaurantID),
		slog.Any("merchantID", merchantID),
	)

	return updated, nil
}

func requireOwner(ctx context.Context, catalogRepo repository.CatalogRepository, merchantID uuid.UUID, restaurantID int64) error {
	restaurant, err := catalogRepo.FindRestaurantByID(ctx, restaurantID)
	if err != nil {
		return err
	}
	if !restaurant.IsOwnedBy(merchantID) {
		return domainerrors.ErrForbidden.WithDetails(fmt.Sprintf("restaurant %d is not owned by this account", restaurantID))
	}

	return nil
}

// resolveItemTags replaces the item's tags with the referenced ones. At most one spiciness tag is allowed.
func resolveItemTags(ctx context.Context, catalogRepo repository.CatalogRepository, item *entity.Item, refs []usecase.TagRef) error {
	item.Spiciness = nil
	item.Tags = nil

	seen := make(map[int64]bool, len(refs))
	for _, ref := range refs {
		if !ref.Dimension.IsValid() {
			return domainerrors.ErrValidationFailed.WithDetails(fmt.Sprintf("unknown dimension %q", ref.Dimension))
		}

		tag, err := catalogRepo.FindTag(ctx, ref.Dimension, ref.Key)
		if err != nil {
			return err
		}
		if seen[tag.ID] {
			continue
		}
		seen[tag.ID] = true

		if !tag.Dimension.IsMultiValued() {
			if item.Spiciness != nil {
				return domainerrors.ErrValidationFailed.WithDetails("an item carries at most one spiciness tag")
			}
			item.Spiciness = tag

			continue
		}
		item.Tags = append(item.Tags, *tag)
	}

	return nil
}
