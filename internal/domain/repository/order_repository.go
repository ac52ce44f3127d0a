package repository

import (
	"context"

	"tastebud/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderRepository persists orders and their lines.
type OrderRepository interface {
	// Create persists the order header and assigns its ID.
	Create(ctx context.Context, order *entity.Order) error

	// AddLine persists one order line and assigns its ID.
	AddLine(ctx context.Context, line *entity.OrderItem) error

	// UpdateTotal sets the persisted total of an order.
	UpdateTotal(ctx context.Context, orderID int64, total decimal.Decimal) error

	// FindByID returns the order with its lines, or ErrOrderNotFound.
	FindByID(ctx context.Context, id int64) (*entity.Order, error)

	// ListByUser returns a user's orders, newest first, with their lines.
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Order, error)

	// TransitionStatus moves an order from one status to another.
	// It returns false when the order was not in the expected status.
	TransitionStatus(ctx context.Context, id int64, from, to entity.OrderStatus) (bool, error)
}
