// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"
	"strconv"

	"tastebud/internal/delivery/api/response"
	deliverycontext "tastebud/internal/delivery/context"
	domainerrors "tastebud/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}

// bind decodes the request into req and runs its validation tags.
// A decoding failure is answered directly; validation failures are returned as domain errors.
func bind(c echo.Context, req any, what string) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, response.BindingError(c, "Invalid "+what+" input")
	}
	if err := c.Validate(req); err != nil {
		return false, err
	}

	return true, nil
}

func currentUserID(c echo.Context) (uuid.UUID, error) {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return uuid.Nil, domainerrors.ErrUnauthorized
	}

	return userID, nil
}

func int64Param(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domainerrors.ErrValidationFailed.WithDetails(name + " must be a positive integer")
	}

	return id, nil
}
