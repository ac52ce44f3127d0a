package postgres

import (
	"context"

	"tastebud/internal/domain/entity"
	domainerrors "tastebud/internal/domain/errors"
	"tastebud/internal/domain/repository"
	"tastebud/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type authRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) repository.AuthRepository {
	return &authRepository{db: db}
}

func (repo *authRepository) CreateCredential(ctx context.Context, auth *entity.Authentication) error {
	if auth.Provider == entity.ProviderTypeEmail {
		auth.ProviderUserID = entity.NormalizeEmail(auth.ProviderUserID)
	}
	authM := &model.AuthenticationModel{
		ID:             auth.ID,
		UserID:         auth.UserID,
		Provider:       string(auth.Provider),
		ProviderUserID: auth.ProviderUserID,
		PasswordHash:   auth.PasswordHash,
	}

	if err := repo.db.WithContext(ctx).Create(authM).Error; err != nil {
		switch {
		case isUniqueConstraintViolation(err):
			return domainerrors.ErrUserAlreadyExists.WrapMessage("credential already registered")
		case isForeignKeyConstraintViolation(err):
			return domainerrors.ErrUserCreationFailed.WrapMessage("credential references a missing user")
		default:
			return domainerrors.NewDatabaseExecuteError(err, "failed to create credential")
		}
	}

	auth.ID = authM.ID
	auth.CreatedAt = authM.CreatedAt

	return nil
}

func (repo *authRepository) FindEmailCredential(ctx context.Context, email string) (*entity.Authentication, error) {
	var authM model.AuthenticationModel
	err := repo.db.WithContext(ctx).
		Where("provider = ? AND provider_user_id = ?", string(entity.ProviderTypeEmail), entity.NormalizeEmail(email)).
		First(&authM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrAuthNotFound
		}

		return nil, errors.WithStack(err)
	}

	return &entity.Authentication{
		ID:             authM.ID,
		UserID:         authM.UserID,
		Provider:       entity.ProviderType(authM.Provider),
		ProviderUserID: authM.ProviderUserID,
		PasswordHash:   authM.PasswordHash,
		CreatedAt:      authM.CreatedAt,
	}, nil
}
