// Package pubsub publishes order-placed events for downstream consumers such as kitchen displays.
package pubsub

import (
	"strconv"

	"tastebud/internal/domain/service"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// orderPlacedMessage returns the JSON payload and the attributes subscribers filter on.
func orderPlacedMessage(event *service.OrderPlacedEvent) ([]byte, map[string]string, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to encode order event")
	}

	attrs := map[string]string{
		"event":         "order.placed",
		"order_id":      strconv.FormatInt(event.OrderID, 10),
		"restaurant_id": strconv.FormatInt(event.RestaurantID, 10),
		"source":        event.Source,
		"user_id":       event.UserID,
	}
	if event.RequestID != "" {
		attrs["request_id"] = event.RequestID
	}

	return data, attrs, nil
}
