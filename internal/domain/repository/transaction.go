package repository

import "context"

// TransactionManager runs a unit of work atomically. Order placement uses it so the order,
// its lines and every preference upsert commit or roll back together.
type TransactionManager interface {
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory returns repositories bound to the running transaction.
type RepositoryFactory interface {
	NewUserRepository() UserRepository
	NewAuthRepository() AuthRepository
	NewProfileRepository() ProfileRepository
	NewCatalogRepository() CatalogRepository
	NewOrderRepository() OrderRepository
	NewPreferenceRepository() PreferenceRepository
}
