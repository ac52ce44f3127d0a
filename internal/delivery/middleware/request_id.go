// Package middleware holds the transport-level echo middleware shared by every server.
package middleware

import (
	"log/slog"

	deliverycontext "tastebud/internal/delivery/context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type RequestIDMiddleware struct {
	logger *slog.Logger
}

func NewRequestIDMiddleware(logger *slog.Logger) *RequestIDMiddleware {
	return &RequestIDMiddleware{logger: logger}
}

// Process keeps a usable client request ID or mints one. The ID is echoed in the response,
// stored on echo.Context and the request context, and bound to a child logger that
// services pick up through GetLoggerOrDefault.
func (m *RequestIDMiddleware) Process(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get(deliverycontext.HeaderXRequestID)
		if !usableRequestID(requestID) {
			requestID = uuid.NewString()
		}

		deliverycontext.SetRequestID(c, requestID)
		c.Response().Header().Set(deliverycontext.HeaderXRequestID, requestID)

		ctx := deliverycontext.WithRequestID(c.Request().Context(), requestID)
		ctx = deliverycontext.WithLogger(ctx, m.logger.With(slog.String("request_id", requestID)))
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// usableRequestID accepts short printable ASCII so client IDs cannot forge log lines.
func usableRequestID(id string) bool {
	if id == "" || len(id) > deliverycontext.MaxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}

	return true
}
