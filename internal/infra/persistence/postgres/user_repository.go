// Package postgres implements the repositories on GORM. Production runs on PostgreSQL; tests run on SQLite.
package postgres

import (
	"context"

	"tastebud/internal/domain/entity"
	domainerrors "tastebud/internal/domain/errors"
	"tastebud/internal/domain/repository"
	"tastebud/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return &entity.User{
		ID:        userM.ID,
		Email:     userM.Email,
		Name:      userM.Name,
		Role:      entity.Role(userM.Role),
		CreatedAt: userM.CreatedAt,
		UpdatedAt: userM.UpdatedAt,
	}, nil
}

func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	if !user.Role.IsValid() {
		return domainerrors.ErrUserCreationFailed.WrapMessage("unknown role " + user.Role.String())
	}
	userM := &model.UserModel{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role.String(),
	}

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		switch {
		case isUniqueConstraintViolation(err):
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
		case isNotNullConstraintViolation(err):
			return domainerrors.ErrUserCreationFailed.WrapMessage("missing required user information")
		default:
			return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
		}
	}

	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}
