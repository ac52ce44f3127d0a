package postgres_test

import (
	"context"
	"testing"

	"tastebud/internal/domain/entity"
	domainerrors "tastebud/internal/domain/errors"
	"tastebud/internal/domain/repository"
	"tastebud/internal/infra/persistence/model"
	"tastebud/internal/infra/persistence/postgres"
	"tastebud/internal/testutil/dbtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createUser(ctx context.Context, repos repository.RepositoryFactory, email string) error {
	return repos.NewUserRepository().Create(ctx, &entity.User{Name: "Ada", Email: email, Role: entity.RoleCustomer})
}

func TestTransactionManager_Commit(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()

	err := postgres.NewTransactionManager(db).Execute(ctx, func(repos repository.RepositoryFactory) error {
		return createUser(ctx, repos, "ada@example.com")
	})
	require.NoError(t, err)

	assert.EqualValues(t, 1, dbtest.Count(t, db, &model.UserModel{}))
}

func TestTransactionManager_RollbackKeepsDomainError(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()

	err := postgres.NewTransactionManager(db).Execute(ctx, func(repos repository.RepositoryFactory) error {
		if err := createUser(ctx, repos, "ada@example.com"); err != nil {
			return err
		}

		return domainerrors.ErrOrderEmpty
	})
	require.ErrorIs(t, err, domainerrors.ErrOrderEmpty)

	assert.Zero(t, dbtest.Count(t, db, &model.UserModel{}))
}

func TestTransactionManager_RollbackOnPanic(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = postgres.NewTransactionManager(db).Execute(ctx, func(repos repository.RepositoryFactory) error {
			if err := createUser(ctx, repos, "ada@example.com"); err != nil {
				return err
			}
			panic("boom")
		})
	})

	assert.Zero(t, dbtest.Count(t, db, &model.UserModel{}))
}
