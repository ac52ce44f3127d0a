package postgres

import (
	"context"

	"tastebud/internal/domain/entity"
	domainerrors "tastebud/internal/domain/errors"
	"tastebud/internal/domain/repository"
	"tastebud/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := &model.OrderModel{
		UserID:       order.UserID,
		RestaurantID: order.RestaurantID,
		Status:       string(order.Status),
		TotalPrice:   order.TotalPrice,
	}

	if err := repo.db.WithContext(ctx).Omit("Restaurant", "Items").Create(orderM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrRestaurantUnavailable.WrapMessage("invalid restaurant reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt

	return nil
}

func (repo *orderRepository) AddLine(ctx context.Context, line *entity.OrderItem) error {
	lineM := &model.OrderItemModel{
		OrderID:      line.OrderID,
		ItemID:       line.ItemID,
		Quantity:     line.Quantity,
		PriceAtOrder: line.PriceAtOrder,
	}

	if err := repo.db.WithContext(ctx).Omit("Item").Create(lineM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("item already present in order")
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrInvalidQuantity
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrItemUnavailable.WrapMessage("invalid item reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order line")
	}

	line.ID = lineM.ID

	return nil
}

func (repo *orderRepository) UpdateTotal(ctx context.Context, orderID int64, total decimal.Decimal) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", orderID).
		Update("total_price", total)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order total")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrOrderNotFound
	}

	return nil
}

func preloadOrderDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Restaurant").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_items.id")
		}).
		Preload("Items.Item")
}

func (repo *orderRepository) FindByID(ctx context.Context, id int64) (*entity.Order, error) {
	var orderM model.OrderModel
	err := preloadOrderDetails(repo.db.WithContext(ctx)).Where("id = ?", id).First(&orderM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	return toOrderDomain(&orderM), nil
}

func (repo *orderRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Order, error) {
	var orderMs []model.OrderModel
	err := preloadOrderDetails(repo.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&orderMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	orders := make([]*entity.Order, 0, len(orderMs))
	for i := range orderMs {
		orders = append(orders, toOrderDomain(&orderMs[i]))
	}

	return orders, nil
}

func (repo *orderRepository) TransitionStatus(ctx context.Context, id int64, from, to entity.OrderStatus) (bool, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Update("status", string(to))
	if result.Error != nil {
		return false, domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order status")
	}

	return result.RowsAffected == 1, nil
}

// --- Mapper Functions ---

func toOrderDomain(data *model.OrderModel) *entity.Order {
	order := &entity.Order{
		ID:           data.ID,
		UserID:       data.UserID,
		RestaurantID: data.RestaurantID,
		Status:       entity.OrderStatus(data.Status),
		TotalPrice:   data.TotalPrice,
		CreatedAt:    data.CreatedAt,
		Items:        make([]entity.OrderItem, 0, len(data.Items)),
	}
	if data.Restaurant != nil {
		order.RestaurantName = data.Restaurant.Name
	}

	for _, lineM := range data.Items {
		line := entity.OrderItem{
			ID:           lineM.ID,
			OrderID:      lineM.OrderID,
			ItemID:       lineM.ItemID,
			Quantity:     lineM.Quantity,
			PriceAtOrder: lineM.PriceAtOrder,
		}
		if lineM.Item != nil {
			line.ItemName = lineM.Item.Name
		}
		order.Items = append(order.Items, line)
	}

	return order
}
