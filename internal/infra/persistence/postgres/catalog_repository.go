package postgres

import (
	"context"
	"sort"

	"tastebud/internal/domain/entity"
	domainerrors "tastebud/internal/domain/errors"
	"tastebud/internal/domain/repository"
	"tastebud/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository is the constructor for catalogRepository.
func NewCatalogRepository(db *gorm.DB) repository.CatalogRepository {
	return &catalogRepository{db: db}
}

// primary routes reads that feed a subsequent write to the primary, so order validation never sees replica lag.
func (repo *catalogRepository) primary(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).Clauses(dbresolver.Write)
}

func preloadItemTags(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("tags.id")
		}).
		Preload("Spiciness")
}

func (repo *catalogRepository) CreateRestaurant(ctx context.Context, restaurant *entity.Restaurant) error {
	if !restaurant.HasValidCoordinates() {
		return domainerrors.ErrInvalidCoordinates
	}

	restaurantM := fromRestaurantDomain(restaurant)
	if err := repo.db.WithContext(ctx).Create(restaurantM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("place id already registered")
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrInvalidCoordinates
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create restaurant")
	}

	restaurant.ID = restaurantM.ID
	restaurant.CreatedAt = restaurantM.CreatedAt

	return nil
}

func (repo *catalogRepository) FindRestaurantByID(ctx context.Context, id int64) (*entity.Restaurant, error) {
	var restaurantM model.RestaurantModel
	err := repo.primary(ctx).Where("id = ?", id).First(&restaurantM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrRestaurantNotFound
		}

		return nil, errors.Wrap(err, "failed to find restaurant")
	}

	return toRestaurantDomain(&restaurantM), nil
}

func (repo *catalogRepository) FindActiveRestaurantsByIDs(ctx context.Context, ids []int64) ([]*entity.Restaurant, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var restaurantMs []model.RestaurantModel
	err := repo.db.WithContext(ctx).
		Where("id IN ? AND is_active = ?", ids, true).
		Order("id").
		Find(&restaurantMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find restaurants")
	}

	return toRestaurantsDomain(restaurantMs), nil
}

func (repo *catalogRepository) FindActiveRestaurantsByPlaceIDs(ctx context.Context, placeIDs []string) ([]*entity.Restaurant, error) {
	if len(placeIDs) == 0 {
		return nil, nil
	}

	var restaurantMs []model.RestaurantModel
	err := repo.db.WithContext(ctx).
		Where("place_id IN ? AND is_active = ?", placeIDs, true).
		Order("id").
		Find(&restaurantMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve restaurants")
	}

	return toRestaurantsDomain(restaurantMs), nil
}

func (repo *catalogRepository) FindActiveRestaurantsInBox(ctx context.Context, box repository.BoundingBox) ([]*entity.Restaurant, error) {
	var restaurantMs []model.RestaurantModel
	err := repo.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("latitude BETWEEN ? AND ?", box.MinLat, box.MaxLat).
		Where("longitude BETWEEN ? AND ?", box.MinLng, box.MaxLng).
		Find(&restaurantMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find restaurants in box")
	}

	return toRestaurantsDomain(restaurantMs), nil
}

func (repo *catalogRepository) FindItemsByIDs(ctx context.Context, ids []int64) ([]*entity.Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var itemMs []model.ItemModel
	err := preloadItemTags(repo.primary(ctx)).
		Preload("Restaurant").
		Where("id IN ?", ids).
		Order("id").
		Find(&itemMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find items")
	}

	items := make([]*entity.Item, 0, len(itemMs))
	for i := range itemMs {
		items = append(items, toItemDomain(&itemMs[i]))
	}

	return items, nil
}

func (repo *catalogRepository) FindItemByID(ctx context.Context, id int64) (*entity.Item, error) {
	var itemM model.ItemModel
	err := preloadItemTags(repo.primary(ctx)).
		Preload("Restaurant").
		Where("id = ?", id).
		First(&itemM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrItemNotFound
		}

		return nil, errors.Wrap(err, "failed to find item")
	}

	return toItemDomain(&itemM), nil
}

func (repo *catalogRepository) ListActiveItems(ctx context.Context, restaurantIDs []int64) (map[int64][]*entity.Item, error) {
	result := make(map[int64][]*entity.Item, len(restaurantIDs))
	if len(restaurantIDs) == 0 {
		return result, nil
	}

	var itemMs []model.ItemModel
	err := preloadItemTags(repo.db.WithContext(ctx)).
		Where("restaurant_id IN ? AND is_active = ?", restaurantIDs, true).
		Order("name").
		Order("id").
		Find(&itemMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list items")
	}

	for i := range itemMs {
		item := toItemDomain(&itemMs[i])
		item.RestaurantActive = true
		result[item.RestaurantID] = append(result[item.RestaurantID], item)
	}

	return result, nil
}

func (repo *catalogRepository) CreateItem(ctx context.Context, item *entity.Item) error {
	itemM := fromItemDomain(item)

	if err := repo.db.WithContext(ctx).Omit("Tags", "Spiciness", "Restaurant").Create(itemM).Error; err != nil {
		return translateItemWriteError(err, "failed to create item")
	}

	if err := repo.linkTags(ctx, itemM.ID, item.Tags); err != nil {
		return err
	}

	item.ID = itemM.ID
	item.CreatedAt = itemM.CreatedAt

	return nil
}

func (repo *catalogRepository) UpdateItem(ctx context.Context, item *entity.Item) error {
	itemM := fromItemDomain(item)

	result := repo.db.WithContext(ctx).
		Model(&model.ItemModel{}).
		Where("id = ?", item.ID).
		Select("name", "description", "price", "is_active", "spiciness_tag_id").
		Updates(itemM)
	if result.Error != nil {
		return translateItemWriteError(result.Error, "failed to update item")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrItemNotFound
	}

	if err := repo.db.WithContext(ctx).Where("item_id = ?", item.ID).Delete(&model.ItemTagModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear item tags")
	}

	return repo.linkTags(ctx, item.ID, item.Tags)
}

func (repo *catalogRepository) linkTags(ctx context.Context, itemID int64, tags []entity.Tag) error {
	if len(tags) == 0 {
		return nil
	}

	links := make([]model.ItemTagModel, 0, len(tags))
	seen := make(map[int64]struct{}, len(tags))
	for _, tag := range tags {
		if _, dup := seen[tag.ID]; dup {
			continue
		}
		seen[tag.ID] = struct{}{}
		links = append(links, model.ItemTagModel{ItemID: itemID, TagID: tag.ID})
	}

	if err := repo.db.WithContext(ctx).Create(&links).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrTagNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to link item tags")
	}

	return nil
}

func translateItemWriteError(err error, details string) error {
	if isUniqueConstraintViolation(err) {
		return domainerrors.ErrItemAlreadyExists
	}
	if isCheckConstraintViolation(err) {
		return domainerrors.ErrValidationFailed.WrapMessage("price must not be negative")
	}
	if isForeignKeyConstraintViolation(err) {
		return domainerrors.ErrRestaurantNotFound.WrapMessage("invalid restaurant or tag reference")
	}

	return domainerrors.NewDatabaseExecuteError(err, details)
}

func (repo *catalogRepository) ListTags(ctx context.Context) ([]entity.Tag, error) {
	var tagMs []model.TagModel
	if err := repo.db.WithContext(ctx).Order("dimension").Order("key").Find(&tagMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list tags")
	}

	return toTagsDomain(tagMs), nil
}

func (repo *catalogRepository) FindTagsByIDs(ctx context.Context, ids []int64) ([]entity.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var tagMs []model.TagModel
	if err := repo.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&tagMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find tags")
	}

	return toTagsDomain(tagMs), nil
}

func (repo *catalogRepository) FindTag(ctx context.Context, dimension entity.Dimension, key string) (*entity.Tag, error) {
	var tagM model.TagModel
	err := repo.db.WithContext(ctx).
		Where("dimension = ? AND key = ?", dimension.String(), key).
		First(&tagM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrTagNotFound
		}

		return nil, errors.Wrap(err, "failed to find tag")
	}

	tag := toTagDomain(&tagM)

	return &tag, nil
}

// --- Mapper Functions ---

func toTagDomain(data *model.TagModel) entity.Tag {
	return entity.Tag{
		ID:        data.ID,
		Dimension: entity.Dimension(data.Dimension),
		Key:       data.Key,
		Label:     data.Label,
	}
}

func toTagsDomain(data []model.TagModel) []entity.Tag {
	tags := make([]entity.Tag, 0, len(data))
	for i := range data {
		tags = append(tags, toTagDomain(&data[i]))
	}

	return tags
}

func toRestaurantDomain(data *model.RestaurantModel) *entity.Restaurant {
	if data == nil {
		return nil
	}

	return &entity.Restaurant{
		ID:        data.ID,
		Name:      data.Name,
		Address:   data.Address,
		Latitude:  data.Latitude,
		Longitude: data.Longitude,
		PlaceID:   data.PlaceID,
		IsActive:  data.IsActive,
		OwnerID:   data.OwnerID,
		CreatedAt: data.CreatedAt,
	}
}

func toRestaurantsDomain(data []model.RestaurantModel) []*entity.Restaurant {
	restaurants := make([]*entity.Restaurant, 0, len(data))
	for i := range data {
		restaurants = append(restaurants, toRestaurantDomain(&data[i]))
	}

	return restaurants
}

func fromRestaurantDomain(data *entity.Restaurant) *model.RestaurantModel {
	return &model.RestaurantModel{
		ID:        data.ID,
		Name:      data.Name,
		Address:   data.Address,
		Latitude:  data.Latitude,
		Longitude: data.Longitude,
		PlaceID:   data.PlaceID,
		IsActive:  data.IsActive,
		OwnerID:   data.OwnerID,
	}
}

func toItemDomain(data *model.ItemModel) *entity.Item {
	item := &entity.Item{
		ID:           data.ID,
		RestaurantID: data.RestaurantID,
		Name:         data.Name,
		Description:  data.Description,
		Price:        data.Price,
		IsActive:     data.IsActive,
		Tags:         toTagsDomain(data.Tags),
		CreatedAt:    data.CreatedAt,
	}
	sort.SliceStable(item.Tags, func(i, j int) bool { return item.Tags[i].ID < item.Tags[j].ID })

	if data.Spiciness != nil {
		spiciness := toTagDomain(data.Spiciness)
		item.Spiciness = &spiciness
	}
	if data.Restaurant != nil {
		item.RestaurantActive = data.Restaurant.IsActive
	}

	return item
}

func fromItemDomain(data *entity.Item) *model.ItemModel {
	itemM := &model.ItemModel{
		ID:           data.ID,
		RestaurantID: data.RestaurantID,
		Name:         data.Name,
		Description:  data.Description,
		Price:        data.Price.Round(2),
		IsActive:     data.IsActive,
	}
	if data.Spiciness != nil {
		id := data.Spiciness.ID
		itemM.SpicinessTagID = &id
	}

	return itemM
}
