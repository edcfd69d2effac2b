package repository

import (
	"context"
	"testing"

	"storefront/internal/domain/repository"
)

// MockRepositoryFactory hands out the same repository mocks the test configured
// on the non-transactional side, so expectations are shared by both paths.
type MockRepositoryFactory struct {
	Users         *MockUserRepository
	RefreshTokens *MockRefreshTokenRepository
	UserTokens    *MockUserTokenRepository
	Devices       *MockDeviceRepository
	Products      *MockProductRepository
	Carts         *MockCartRepository
	Orders        *MockOrderRepository
	Intents       *MockPaymentIntentRepository
	Reviews       *MockReviewRepository
	HeroImages    *MockHeroImageRepository
}

// NewMockRepositoryFactory creates a factory with a fresh mock for every repository.
func NewMockRepositoryFactory(t *testing.T) *MockRepositoryFactory {
	return &MockRepositoryFactory{
		Users:         NewMockUserRepository(t),
		RefreshTokens: NewMockRefreshTokenRepository(t),
		UserTokens:    NewMockUserTokenRepository(t),
		Devices:       NewMockDeviceRepository(t),
		Products:      NewMockProductRepository(t),
		Carts:         NewMockCartRepository(t),
		Orders:        NewMockOrderRepository(t),
		Intents:       NewMockPaymentIntentRepository(t),
		Reviews:       NewMockReviewRepository(t),
		HeroImages:    NewMockHeroImageRepository(t),
	}
}

func (f *MockRepositoryFactory) UserRepo() repository.UserRepository {
	return f.Users
}

func (f *MockRepositoryFactory) RefreshTokenRepo() repository.RefreshTokenRepository {
	return f.RefreshTokens
}

func (f *MockRepositoryFactory) UserTokenRepo() repository.UserTokenRepository {
	return f.UserTokens
}

func (f *MockRepositoryFactory) DeviceRepo() repository.DeviceRepository {
	return f.Devices
}

func (f *MockRepositoryFactory) ProductRepo() repository.ProductRepository {
	return f.Products
}

func (f *MockRepositoryFactory) CartRepo() repository.CartRepository {
	return f.Carts
}

func (f *MockRepositoryFactory) OrderRepo() repository.OrderRepository {
	return f.Orders
}

func (f *MockRepositoryFactory) PaymentIntentRepo() repository.PaymentIntentRepository {
	return f.Intents
}

func (f *MockRepositoryFactory) ReviewRepo() repository.ReviewRepository {
	return f.Reviews
}

func (f *MockRepositoryFactory) HeroImageRepo() repository.HeroImageRepository {
	return f.HeroImages
}

// MockTransactionManager runs the callback synchronously against Factory.
// Executions counts the transactions started; CommitErr, when set, is returned
// after a successful callback to simulate a failed commit.
type MockTransactionManager struct {
	Factory    *MockRepositoryFactory
	CommitErr  error
	Executions int
}

func NewMockTransactionManager(factory *MockRepositoryFactory) *MockTransactionManager {
	return &MockTransactionManager{Factory: factory}
}

func (m *MockTransactionManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	m.Executions++
	if err := fn(m.Factory); err != nil {
		return err
	}

	return m.CommitErr
}
