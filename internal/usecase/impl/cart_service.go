package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	currency    string
	logger      *slog.Logger
	now         func() time.Time
}

// NewCartService creates the cart use case. Prices are reported in the payment currency.
func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.CartUsecase {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		currency:    paymentCurrency(cfg),
		logger:      logger,
		now:         time.Now,
	}
}

func (s *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, s.logger)
}

func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	items, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, dataError(err, "failed to fetch cart")
	}

	return entity.NewCart(items, s.currency, s.now()), nil
}

func (s *cartService) AddItem(ctx context.Context, userID, productID uuid.UUID, qty int) (*entity.Cart, error) {
	if qty < 1 {
		return nil, errors.Wrap(domainerrors.ErrInvalidQuantity, "quantity must be at least 1")
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProductNotFound, "product not found")
		}

		return nil, dataError(err, "failed to add item to cart")
	}
	if !product.IsActive {
		return nil, errors.Wrap(domainerrors.ErrProductUnavailable, "product is inactive")
	}

	inCart := 0
	existing, err := s.cartRepo.FindByProduct(ctx, userID, productID)
	switch {
	case err == nil:
		inCart = existing.Quantity
	case !errors.Is(err, repository.ErrCartItemNotFound):
		return nil, dataError(err, "failed to add item to cart")
	}

	if inCart+qty > product.Stock {
		return nil, insufficientStock(product)
	}

	if err := s.cartRepo.AddQuantity(ctx, userID, productID, qty); err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			return nil, insufficientStock(product)
		}
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProductNotFound, "product not found")
		}

		return nil, dataError(err, "failed to add item to cart")
	}
	s.log(ctx).Debug("Cart item added", slog.Any("userID", userID), slog.Any("productID", productID), slog.Int("quantity", qty))

	return s.GetCart(ctx, userID)
}

func (s *cartService) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, qty int) (*entity.Cart, error) {
	if qty <= 0 {
		return s.RemoveItem(ctx, userID, itemID)
	}

	item, err := s.cartRepo.FindItem(ctx, userID, itemID)
	if err != nil {
		return nil, cartItemError(err, "failed to update cart item")
	}

	if product := item.Product; product != nil && qty > product.Stock {
		return nil, insufficientStock(product)
	}

	if err := s.cartRepo.SetQuantity(ctx, userID, itemID, qty); err != nil {
		return nil, cartItemError(err, "failed to update cart item")
	}

	return s.GetCart(ctx, userID)
}

func (s *cartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*entity.Cart, error) {
	if err := s.cartRepo.DeleteItem(ctx, userID, itemID); err != nil {
		return nil, cartItemError(err, "failed to remove cart item")
	}

	return s.GetCart(ctx, userID)
}

func (s *cartService) ClearCart(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	if err := s.cartRepo.ClearByUser(ctx, userID); err != nil {
		return nil, dataError(err, "failed to clear cart")
	}

	return entity.NewCart(nil, s.currency, s.now()), nil
}

func cartItemError(err error, action string) error {
	if errors.Is(err, repository.ErrCartItemNotFound) {
		return errors.Wrap(domainerrors.ErrCartItemNotFound, "cart item not found")
	}

	return dataError(err, action)
}

func insufficientStock(product *entity.Product) error {
	msg := fmt.Sprintf("Only %d left in stock for %s", product.Stock, product.Name)
	if product.Stock <= 0 {
		msg = fmt.Sprintf("%s is out of stock", product.Name)
	}

	return domainerrors.ErrInsufficientStock.WithMessage(msg)
}

func paymentCurrency(cfg *config.Config) string {
	if cfg != nil && cfg.Payment != nil && cfg.Payment.Currency != "" {
		return cfg.Payment.Currency
	}

	return "INR"
}
