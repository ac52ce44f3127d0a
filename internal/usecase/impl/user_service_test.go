package impl

import (
	"context"
	"testing"

	"tastebud/config"
	"tastebud/internal/domain/entity"
	domainerrors "tastebud/internal/domain/errors"
	"tastebud/internal/infra/auth"
	"tastebud/internal/infra/persistence/model"
	"tastebud/internal/infra/persistence/postgres"
	"tastebud/internal/testutil/dbtest"
	"tastebud/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type userServiceFixtures struct {
	db      *gorm.DB
	service usecase.UserUsecase
	cfg     *config.Config
}

func createTestUserService(t *testing.T) userServiceFixtures {
	t.Helper()

	db := dbtest.New(t)
	cfg := &config.Config{Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost}}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.SecretKey.Refresh = "test_refresh_secret_key_very_long_for_testing"

	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	service := NewUserService(UserServiceParams{
		TxManager:    postgres.NewTransactionManager(db),
		UserRepo:     postgres.NewUserRepository(db),
		AuthRepo:     postgres.NewAuthRepository(db),
		Hasher:       auth.NewBcryptHasher(cfg),
		TokenService: tokenService,
		Logger:       newDiscardLogger(),
	})

	return userServiceFixtures{db: db, service: service, cfg: cfg}
}

func TestUserService_RegisterCustomerCreatesProfile(t *testing.T) {
	fx := createTestUserService(t)

	out, err := fx.service.RegisterCustomer(context.Background(), &usecase.RegisterInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleCustomer, out.User.Role)
	assert.EqualValues(t, 1, dbtest.Count(t, fx.db, &model.UserProfileModel{}))
	assert.EqualValues(t, 1, dbtest.Count(t, fx.db, &model.AuthenticationModel{}))
}

func TestUserService_RegisterMerchantHasNoProfile(t *testing.T) {
	fx := createTestUserService(t)

	out, err := fx.service.RegisterMerchant(context.Background(), &usecase.RegisterInput{
		Name:     "Chef",
		Email:    "chef@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleMerchant, out.User.Role)
	assert.Zero(t, dbtest.Count(t, fx.db, &model.UserProfileModel{}))
}

func TestUserService_RegisterDuplicateEmail(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	input := &usecase.RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "secret123"}

	_, err := fx.service.RegisterCustomer(ctx, input)
	require.NoError(t, err)

	_, err = fx.service.RegisterMerchant(ctx, input)
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
	assert.EqualValues(t, 1, dbtest.Count(t, fx.db, &model.UserModel{}))
}

func TestUserService_LoginAndRefresh(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	registered, err := fx.service.RegisterCustomer(ctx, &usecase.RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = fx.service.Login(ctx, &usecase.LoginInput{Email: "ada@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	_, err = fx.service.Login(ctx, &usecase.LoginInput{Email: "nobody@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	login, err := fx.service.Login(ctx, &usecase.LoginInput{Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)
	assert.Equal(t, registered.User.ID, login.User.ID)

	refreshed, err := fx.service.RefreshToken(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = fx.service.RefreshToken(ctx, login.AccessToken)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)

	user, err := fx.service.GetUser(ctx, registered.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
}

func TestUserService_EmailIsCaseInsensitive(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	out, err := fx.service.RegisterCustomer(ctx, &usecase.RegisterInput{
		Name:     "Ada",
		Email:    " Ada@Example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", out.User.Email)

	_, err = fx.service.RegisterCustomer(ctx, &usecase.RegisterInput{
		Name:     "Ada again",
		Email:    "ADA@example.com",
		Password: "secret123",
	})
	require.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)

	login, err := fx.service.Login(ctx, &usecase.LoginInput{Email: "ada@EXAMPLE.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, login.User.ID)
}
