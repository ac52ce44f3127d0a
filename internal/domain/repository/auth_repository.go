package repository

import (
	"context"

	"tastebud/internal/domain/entity"
)

// AuthRepository stores login credentials.
type AuthRepository interface {
	// CreateCredential fails with ErrUserAlreadyExists when the provider identity is taken.
	CreateCredential(ctx context.Context, auth *entity.Authentication) error

	// FindEmailCredential returns ErrAuthNotFound when no account uses the address.
	FindEmailCredential(ctx context.Context, email string) (*entity.Authentication, error)
}
