package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order. Status is the only mutable part of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid checks if the status is a valid value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// Order belongs to one user and one restaurant.
// TotalPrice is the sum of its line totals at creation time.
type Order struct {
	ID             int64
	UserID         uuid.UUID
	RestaurantID   int64
	RestaurantName string
	Status         OrderStatus
	TotalPrice     decimal.Decimal
	Items          []OrderItem
	CreatedAt      time.Time
}

// OrderItem is one order line. PriceAtOrder is the item price snapshot taken when the order was placed.
type OrderItem struct {
	ID           int64
	OrderID      int64
	ItemID       int64
	ItemName     string
	Quantity     int
	PriceAtOrder decimal.Decimal
}

// LineTotal returns PriceAtOrder * Quantity.
func (l *OrderItem) LineTotal() decimal.Decimal {
	return l.PriceAtOrder.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// OrderLine is a requested (item, quantity) pair before it becomes an OrderItem.
type OrderLine struct {
	ItemID   int64
	Quantity int
}
