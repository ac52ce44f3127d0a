package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel mirrors the 'orders' table.
type OrderModel struct {
	ID           int64           `gorm:"primaryKey;autoIncrement"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	RestaurantID int64           `gorm:"not null;index"`
	Status       string          `gorm:"type:varchar(20);not null"`
	TotalPrice   decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	CreatedAt    time.Time       `gorm:"index"`

	Restaurant *RestaurantModel `gorm:"foreignKey:RestaurantID"`
	Items      []OrderItemModel `gorm:"foreignKey:OrderID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table. PriceAtOrder snapshots the item price.
type OrderItemModel struct {
	ID           int64           `gorm:"primaryKey;autoIncrement"`
	OrderID      int64           `gorm:"not null;uniqueIndex:idx_order_items_order_item"`
	ItemID       int64           `gorm:"not null;uniqueIndex:idx_order_items_order_item"`
	Quantity     int             `gorm:"not null;check:chk_order_items_quantity,quantity >= 1"`
	PriceAtOrder decimal.Decimal `gorm:"type:numeric(10,2);not null"`

	Item *ItemModel `gorm:"foreignKey:ItemID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}
