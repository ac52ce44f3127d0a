// Package context carries request-scoped values between the HTTP layer and the use cases.
package context

import (
	"context"

	"github.com/labstack/echo/v4"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	// KeyRequestID is the key for storing the request ID.
	KeyRequestID ContextKey = "request_id"

	// HeaderXRequestID is the HTTP header carrying the request ID in both directions.
	HeaderXRequestID = echo.HeaderXRequestID

	// MaxRequestIDLength bounds client-supplied request IDs before they reach logs and responses.
	MaxRequestIDLength = 128
)

// GetRequestID returns the request ID stored on echo.Context, or an empty string.
func GetRequestID(c echo.Context) string {
	id, _ := c.Get(string(KeyRequestID)).(string)

	return id
}

// SetRequestID sets the request ID in echo.Context.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(KeyRequestID), requestID)
}

// GetRequestIDFromContext extracts the request ID from context.Context, or an empty string.
func GetRequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(KeyRequestID).(string)

	return id
}

// WithRequestID returns a new context with the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, KeyRequestID, requestID)
}
