package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ProviderType identifies how an authentication record verifies the user.
type ProviderType string

const ProviderTypeEmail ProviderType = "email"

// Authentication is a login credential. For the email provider ProviderUserID is the normalized address.
type Authentication struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Provider       ProviderType
	ProviderUserID string
	PasswordHash   string
	CreatedAt      time.Time
}

// NormalizeEmail trims and lowercases an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
