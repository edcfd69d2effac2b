package impl

import (
	"bytes"
	"context"
	"testing"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	mockRepo "storefront/internal/mocks/repository"
	mockService "storefront/internal/mocks/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type productFixtures struct {
	service  usecase.ProductUsecase
	products *mockRepo.MockProductRepository
	exporter *mockService.MockSpreadsheetExporter
}

func createTestProductService(t *testing.T) productFixtures {
	products := mockRepo.NewMockProductRepository(t)
	exporter := mockService.NewMockSpreadsheetExporter(t)

	svc := NewProductService(products, exporter, newDiscardLogger()).(*productService)
	svc.now = fixedNow

	return productFixtures{service: svc, products: products, exporter: exporter}
}

func TestProductService_ListProducts_ForcesActiveAndDefaultSort(t *testing.T) {
	fx := createTestProductService(t)
	ctx := context.Background()

	fx.products.On("List", ctx, mock.MatchedBy(func(f entity.ProductFilter) bool {
		return !f.IncludeInactive && f.Sort == entity.ProductSortFeatured && f.Search == "bottle" && f.Limit == entity.DefaultPageSize
	})).Return([]*entity.Product{newProduct("Bottle", "100", 1)}, int64(1), nil)

	page, err := fx.service.ListProducts(ctx, entity.ProductFilter{Search: " bottle ", Sort: "bogus", IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
}

func TestProductService_AdminListProducts_IncludesInactive(t *testing.T) {
	fx := createTestProductService(t)
	ctx := context.Background()

	fx.products.On("List", ctx, mock.MatchedBy(func(f entity.ProductFilter) bool {
		return f.IncludeInactive && f.Sort == entity.ProductSortPriceAsc
	})).Return(nil, int64(0), nil)

	page, err := fx.service.AdminListProducts(ctx, entity.ProductFilter{Sort: entity.ProductSortPriceAsc})
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
}

func TestProductService_GetProduct_HidesInactive(t *testing.T) {
	fx := createTestProductService(t)
	product := newProduct("Old Mug", "200", 3)
	product.IsActive = false

	fx.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)

	_, err := fx.service.GetProduct(context.Background(), product.ID)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestProductService_CreateProduct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		fx := createTestProductService(t)
		fx.products.On("Create", mock.Anything, mock.MatchedBy(func(p *entity.Product) bool {
			return p.Name == "Copper Bottle" && p.ID != uuid.Nil && p.CreatedAt.Equal(testNow)
		})).Return(nil)

		product, err := fx.service.CreateProduct(context.Background(), usecase.ProductInput{
			Name:     " Copper Bottle ",
			Category: "bottles",
			Price:    money("999.50"),
			Stock:    12,
			IsActive: true,
		})
		require.NoError(t, err)
		assert.True(t, money("999.50").Equal(product.Price))
	})

	t.Run("zero price", func(t *testing.T) {
		fx := createTestProductService(t)

		_, err := fx.service.CreateProduct(context.Background(), usecase.ProductInput{Name: "x", Category: "y"})
		assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	})
}

func TestProductService_SetSale(t *testing.T) {
	start := testNow
	end := testNow.Add(48 * time.Hour)

	t.Run("valid sale", func(t *testing.T) {
		fx := createTestProductService(t)
		product := newProduct("Copper Bottle", "1000", 5)
		fx.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		fx.products.On("Update", mock.Anything, product).Return(nil)

		sale := money("800")
		got, err := fx.service.SetSale(context.Background(), product.ID, usecase.SaleInput{
			OnSale: true, SalePrice: &sale, SaleStartsAt: &start, SaleEndsAt: &end,
		})
		require.NoError(t, err)
		assert.True(t, got.SaleActive(testNow))
		assert.True(t, money("800").Equal(got.EffectivePrice(testNow)))
	})

	t.Run("sale price not below price", func(t *testing.T) {
		fx := createTestProductService(t)
		product := newProduct("Copper Bottle", "1000", 5)
		fx.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)

		sale := money("1000")
		_, err := fx.service.SetSale(context.Background(), product.ID, usecase.SaleInput{OnSale: true, SalePrice: &sale})
		assert.ErrorIs(t, err, domainerrors.ErrInvalidSale)
	})

	t.Run("window reversed", func(t *testing.T) {
		fx := createTestProductService(t)
		product := newProduct("Copper Bottle", "1000", 5)
		fx.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)

		sale := money("500")
		_, err := fx.service.SetSale(context.Background(), product.ID, usecase.SaleInput{
			OnSale: true, SalePrice: &sale, SaleStartsAt: &end, SaleEndsAt: &start,
		})
		assert.ErrorIs(t, err, domainerrors.ErrInvalidSale)
	})

	t.Run("turning the sale off clears it", func(t *testing.T) {
		fx := createTestProductService(t)
		product := newProduct("Copper Bottle", "1000", 5)
		sale := money("700")
		product.OnSale = true
		product.SalePrice = &sale
		fx.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		fx.products.On("Update", mock.Anything, product).Return(nil)

		got, err := fx.service.SetSale(context.Background(), product.ID, usecase.SaleInput{OnSale: false})
		require.NoError(t, err)
		assert.Nil(t, got.SalePrice)
		assert.True(t, money("1000").Equal(got.EffectivePrice(testNow)))
	})
}

func TestProductService_DeleteProduct_NotFound(t *testing.T) {
	fx := createTestProductService(t)
	id := uuid.New()
	fx.products.On("SoftDelete", mock.Anything, id).Return(repository.ErrProductNotFound)

	assert.ErrorIs(t, fx.service.DeleteProduct(context.Background(), id), domainerrors.ErrProductNotFound)
}

func TestProductService_ExportProducts(t *testing.T) {
	fx := createTestProductService(t)
	products := []*entity.Product{newProduct("A", "1", 1), newProduct("B", "2", 2)}

	fx.products.On("ListAll", mock.Anything).Return(products, nil)
	fx.exporter.On("ExportProducts", mock.Anything, products).Return(nil)

	var buf bytes.Buffer
	require.NoError(t, fx.service.ExportProducts(context.Background(), &buf))
}
