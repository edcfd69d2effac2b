package service

import (
	"context"
	"testing"

	"storefront/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

type MockPaymentGateway struct {
	mock.Mock
}

func NewMockPaymentGateway(t *testing.T) *MockPaymentGateway {
	m := &MockPaymentGateway{}
	register(t, &m.Mock)

	return m
}

func (m *MockPaymentGateway) Provider() string {
	return m.Called().String(0)
}

func (m *MockPaymentGateway) PublicKey() string {
	return m.Called().String(0)
}

func (m *MockPaymentGateway) CreateOrder(ctx context.Context, req *service.CreatePaymentOrderRequest) (*service.PaymentOrder, error) {
	args := m.Called(ctx, req)

	return value[*service.PaymentOrder](args, 0), args.Error(1)
}

func (m *MockPaymentGateway) VerifyPayment(ctx context.Context, confirmation *service.PaymentConfirmation) error {
	return m.Called(ctx, confirmation).Error(0)
}

type MockLocker struct {
	mock.Mock
}

func NewMockLocker(t *testing.T) *MockLocker {
	m := &MockLocker{}
	register(t, &m.Mock)

	return m
}

// Acquire returns a no-op release when the expectation does not supply one.
func (m *MockLocker) Acquire(ctx context.Context, key string) (func(), error) {
	args := m.Called(ctx, key)
	release := value[func()](args, 0)
	if release == nil {
		release = func() {}
	}

	return release, args.Error(1)
}

type MockBusinessMetrics struct {
	mock.Mock
}

func NewMockBusinessMetrics(t *testing.T) *MockBusinessMetrics {
	m := &MockBusinessMetrics{}
	register(t, &m.Mock)

	return m
}

func (m *MockBusinessMetrics) CheckoutStarted(provider string) {
	m.Called(provider)
}

func (m *MockBusinessMetrics) PaymentVerified(provider, outcome string) {
	m.Called(provider, outcome)
}

func (m *MockBusinessMetrics) OrderStatusChanged(status string) {
	m.Called(status)
}
