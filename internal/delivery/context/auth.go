package context

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// KeyUserID is the key for storing the authenticated user ID in echo.Context.
	KeyUserID ContextKey = "user_id"

	// KeyRoles is the key for storing the authenticated roles in echo.Context.
	KeyRoles ContextKey = "roles"
)

// SetAuth stores the authenticated identity in echo.Context.
func SetAuth(c echo.Context, userID uuid.UUID, roles []string) {
	c.Set(string(KeyUserID), userID)
	c.Set(string(KeyRoles), roles)
}

// GetUserID returns the authenticated user ID, if any.
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(string(KeyUserID)).(uuid.UUID)

	return userID, ok
}

// GetRoles returns the authenticated roles, if any.
func GetRoles(c echo.Context) []string {
	roles, _ := c.Get(string(KeyRoles)).([]string)

	return roles
}
