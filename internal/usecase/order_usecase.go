package usecase

import (
	"context"

	"tastebud/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateOrderInput is a single-restaurant order request.
type CreateOrderInput struct {
	RestaurantID int64
	Lines        []entity.OrderLine
	// Source is carried on the order-placed event: manual or auto.
	Source string
}

// OrderResult is a committed order and whether the user's preferences were updated with it.
type OrderResult struct {
	Order        *entity.Order
	UpdatedPrefs bool
}

// ListOrdersInput pages through a user's order history.
type ListOrdersInput struct {
	Limit  int
	Offset int
}

// OrderUsecase defines order placement and order history operations.
type OrderUsecase interface {
	// CreateOrder validates the request, then writes the order, its lines, its total and the preference
	// updates in one transaction.
	CreateOrder(ctx context.Context, userID uuid.UUID, input *CreateOrderInput) (*OrderResult, error)
	GetOrder(ctx context.Context, userID uuid.UUID, orderID int64) (*entity.Order, error)
	ListOrders(ctx context.Context, userID uuid.UUID, input *ListOrdersInput) ([]*entity.Order, error)
	// CancelOrder moves a pending order to cancelled. Preference scores are not reverted.
	CancelOrder(ctx context.Context, userID uuid.UUID, orderID int64) (*entity.Order, error)
	// PickupQR renders the PNG pickup code of a pending order.
	PickupQR(ctx context.Context, userID uuid.UUID, orderID int64) ([]byte, error)
}
