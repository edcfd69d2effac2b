package repository

import "context"

// TransactionManager runs multi-table writes atomically. Placing an order
// goes through Execute so stock, order and cart rows commit together.
type TransactionManager interface {
	// Execute commits when fn returns nil and rolls back otherwise. The
	// repositories handed to fn share the transaction; repositories captured
	// outside fn do not.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory exposes transaction-bound repositories inside Execute.
type RepositoryFactory interface {
	UserRepo() UserRepository
	RefreshTokenRepo() RefreshTokenRepository
	UserTokenRepo() UserTokenRepository
	DeviceRepo() DeviceRepository

	ProductRepo() ProductRepository
	CartRepo() CartRepository
	OrderRepo() OrderRepository
	PaymentIntentRepo() PaymentIntentRepository
	ReviewRepo() ReviewRepository
	HeroImageRepo() HeroImageRepository
}
