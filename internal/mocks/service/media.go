package service

import (
	"context"
	"io"
	"testing"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockMediaStorage struct {
	mock.Mock
}

func NewMockMediaStorage(t *testing.T) *MockMediaStorage {
	m := &MockMediaStorage{}
	register(t, &m.Mock)

	return m
}

// Put also accepts a func(ctx, key, contentType, body) error as the return value.
func (m *MockMediaStorage) Put(ctx context.Context, key, contentType string, body io.Reader) error {
	args := m.Called(ctx, key, contentType, body)
	if fn, ok := args.Get(0).(func(context.Context, string, string, io.Reader) error); ok {
		return fn(ctx, key, contentType, body)
	}

	return args.Error(0)
}

func (m *MockMediaStorage) Open(ctx context.Context, key string) (*service.StoredObject, error) {
	args := m.Called(ctx, key)

	return value[*service.StoredObject](args, 0), args.Error(1)
}

func (m *MockMediaStorage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockMediaStorage) URL(key string) string {
	return m.Called(key).String(0)
}

type MockQRCodeService struct {
	mock.Mock
}

func NewMockQRCodeService(t *testing.T) *MockQRCodeService {
	m := &MockQRCodeService{}
	register(t, &m.Mock)

	return m
}

func (m *MockQRCodeService) GenerateReceiptQR(orderID uuid.UUID) ([]byte, error) {
	args := m.Called(orderID)

	return value[[]byte](args, 0), args.Error(1)
}

func (m *MockQRCodeService) ParseReceiptQR(qrData string) (uuid.UUID, error) {
	args := m.Called(qrData)

	return value[uuid.UUID](args, 0), args.Error(1)
}

type MockSpreadsheetExporter struct {
	mock.Mock
}

func NewMockSpreadsheetExporter(t *testing.T) *MockSpreadsheetExporter {
	m := &MockSpreadsheetExporter{}
	register(t, &m.Mock)

	return m
}

func (m *MockSpreadsheetExporter) ContentType() string {
	return m.Called().String(0)
}

func (m *MockSpreadsheetExporter) FileExtension() string {
	return m.Called().String(0)
}

func (m *MockSpreadsheetExporter) ExportProducts(w io.Writer, products []*entity.Product) error {
	return m.Called(w, products).Error(0)
}

func (m *MockSpreadsheetExporter) ExportOrders(w io.Writer, orders []*entity.Order) error {
	return m.Called(w, orders).Error(0)
}
