package service

import (
	"context"
)

// OrderPlacedEvent is emitted after an order transaction commits.
type OrderPlacedEvent struct {
	RequestID    string `json:"request_id,omitempty"` // For distributed tracing
	OrderID      int64  `json:"order_id"`
	UserID       string `json:"user_id"`
	RestaurantID int64  `json:"restaurant_id"`
	TotalPrice   string `json:"total_price"`
	ItemCount    int    `json:"item_count"`
	Source       string `json:"source"` // "manual" or "auto"
	UpdatedPrefs bool   `json:"updated_prefs"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishOrderPlaced publishes an order-placed event for downstream consumers
	PublishOrderPlaced(ctx context.Context, event *OrderPlacedEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
