package postgres

import (
	"context"

	"tastebud/internal/domain/repository"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type gormTransactionManager struct {
	db *gorm.DB
}

func NewTransactionManager(db *gorm.DB) repository.TransactionManager {
	return &gormTransactionManager{db: db}
}

// Execute commits when fn returns nil and rolls back on an error or a panic.
// fn's own error is returned as is so domain errors keep their codes.
func (tm *gormTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	var fnErr error
	err := tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fnErr = fn(&txRepositories{tx: tx})

		return fnErr
	})
	switch {
	case fnErr != nil:
		return fnErr
	case err != nil:
		return errors.Wrap(err, "transaction failed")
	default:
		return nil
	}
}

// txRepositories hands out repositories sharing one *gorm.DB transaction.
type txRepositories struct {
	tx *gorm.DB
}

func (f *txRepositories) NewUserRepository() repository.UserRepository {
	return NewUserRepository(f.tx)
}

func (f *txRepositories) NewAuthRepository() repository.AuthRepository {
	return NewAuthRepository(f.tx)
}

func (f *txRepositories) NewProfileRepository() repository.ProfileRepository {
	return NewProfileRepository(f.tx)
}

func (f *txRepositories) NewCatalogRepository() repository.CatalogRepository {
	return NewCatalogRepository(f.tx)
}

func (f *txRepositories) NewOrderRepository() repository.OrderRepository {
	return NewOrderRepository(f.tx)
}

func (f *txRepositories) NewPreferenceRepository() repository.PreferenceRepository {
	return NewPreferenceRepository(f.tx)
}
