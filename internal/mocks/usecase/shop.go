package usecase

import (
	"context"
	"io"
	"testing"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockCartUsecase struct {
	mock.Mock
}

func NewMockCartUsecase(t *testing.T) *MockCartUsecase {
	m := &MockCartUsecase{}
	register(t, &m.Mock)

	return m
}

func (m *MockCartUsecase) GetCart(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	args := m.Called(ctx, userID)

	return value[*entity.Cart](args, 0), args.Error(1)
}

func (m *MockCartUsecase) AddItem(ctx context.Context, userID, productID uuid.UUID, qty int) (*entity.Cart, error) {
	args := m.Called(ctx, userID, productID, qty)

	return value[*entity.Cart](args, 0), args.Error(1)
}

func (m *MockCartUsecase) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, qty int) (*entity.Cart, error) {
	args := m.Called(ctx, userID, itemID, qty)

	return value[*entity.Cart](args, 0), args.Error(1)
}

func (m *MockCartUsecase) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*entity.Cart, error) {
	args := m.Called(ctx, userID, itemID)

	return value[*entity.Cart](args, 0), args.Error(1)
}

func (m *MockCartUsecase) ClearCart(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	args := m.Called(ctx, userID)

	return value[*entity.Cart](args, 0), args.Error(1)
}

type MockCheckoutUsecase struct {
	mock.Mock
}

func NewMockCheckoutUsecase(t *testing.T) *MockCheckoutUsecase {
	m := &MockCheckoutUsecase{}
	register(t, &m.Mock)

	return m
}

func (m *MockCheckoutUsecase) CreatePaymentOrder(ctx context.Context, userID uuid.UUID, input *usecase.CreatePaymentOrderInput) (*usecase.PaymentOrderOutput, error) {
	args := m.Called(ctx, userID, input)

	return value[*usecase.PaymentOrderOutput](args, 0), args.Error(1)
}

func (m *MockCheckoutUsecase) VerifyPayment(ctx context.Context, userID uuid.UUID, confirmation *service.PaymentConfirmation) (*usecase.VerifyPaymentOutput, error) {
	args := m.Called(ctx, userID, confirmation)

	return value[*usecase.VerifyPaymentOutput](args, 0), args.Error(1)
}

type MockOrderUsecase struct {
	mock.Mock
}

func NewMockOrderUsecase(t *testing.T) *MockOrderUsecase {
	m := &MockOrderUsecase{}
	register(t, &m.Mock)

	return m
}

func (m *MockOrderUsecase) ListUserOrders(ctx context.Context, userID uuid.UUID, page entity.Pagination) (*entity.Page[*entity.Order], error) {
	args := m.Called(ctx, userID, page)

	return value[*entity.Page[*entity.Order]](args, 0), args.Error(1)
}

func (m *MockOrderUsecase) GetOrder(ctx context.Context, viewer usecase.Viewer, orderID uuid.UUID) (*entity.Order, error) {
	args := m.Called(ctx, viewer, orderID)

	return value[*entity.Order](args, 0), args.Error(1)
}

func (m *MockOrderUsecase) ReceiptQR(ctx context.Context, viewer usecase.Viewer, orderID uuid.UUID) ([]byte, error) {
	args := m.Called(ctx, viewer, orderID)

	return value[[]byte](args, 0), args.Error(1)
}

func (m *MockOrderUsecase) ListOrders(ctx context.Context, status string, page entity.Pagination) (*entity.Page[*entity.Order], error) {
	args := m.Called(ctx, status, page)

	return value[*entity.Page[*entity.Order]](args, 0), args.Error(1)
}

func (m *MockOrderUsecase) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, input usecase.UpdateOrderStatusInput) (*entity.Order, error) {
	args := m.Called(ctx, orderID, input)

	return value[*entity.Order](args, 0), args.Error(1)
}

func (m *MockOrderUsecase) LookupByReceipt(ctx context.Context, qrData string) (*entity.Order, error) {
	args := m.Called(ctx, qrData)

	return value[*entity.Order](args, 0), args.Error(1)
}

func (m *MockOrderUsecase) ExportOrders(ctx context.Context, w io.Writer, status string) error {
	return m.Called(ctx, w, status).Error(0)
}

type MockMediaUsecase struct {
	mock.Mock
}

func NewMockMediaUsecase(t *testing.T) *MockMediaUsecase {
	m := &MockMediaUsecase{}
	register(t, &m.Mock)

	return m
}

func (m *MockMediaUsecase) Upload(ctx context.Context, input *usecase.UploadInput) (*usecase.UploadOutput, error) {
	args := m.Called(ctx, input)

	return value[*usecase.UploadOutput](args, 0), args.Error(1)
}

func (m *MockMediaUsecase) Open(ctx context.Context, key string) (*service.StoredObject, error) {
	args := m.Called(ctx, key)

	return value[*service.StoredObject](args, 0), args.Error(1)
}
