package postgres

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// cartRepository implements the repository.CartRepository interface.
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository is the constructor for cartRepository.
func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepository{
		db: db,
	}
}

// withProduct preloads the product including soft-deleted rows, which the
// cart then reports as unavailable.
func withProduct(db *gorm.DB) *gorm.DB {
	return db.Preload("Product", func(tx *gorm.DB) *gorm.DB {
		return tx.Unscoped()
	})
}

// FindByUser returns the user's lines with their products loaded, oldest first.
func (repo *cartRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CartItem, error) {
	var itemModels []*model.CartItemModel

	if err := withProduct(repo.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("created_at ASC, id").
		Find(&itemModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find cart")
	}

	items := make([]*entity.CartItem, 0, len(itemModels))
	for _, itemM := range itemModels {
		items = append(items, toCartItemDomain(itemM))
	}

	return items, nil
}

// FindItem returns one of the user's lines.
func (repo *cartRepository) FindItem(ctx context.Context, userID, itemID uuid.UUID) (*entity.CartItem, error) {
	return repo.findOne(ctx, "user_id = ? AND id = ?", userID, itemID)
}

// FindByProduct returns the user's line for productID.
func (repo *cartRepository) FindByProduct(ctx context.Context, userID, productID uuid.UUID) (*entity.CartItem, error) {
	return repo.findOne(ctx, "user_id = ? AND product_id = ?", userID, productID)
}

func (repo *cartRepository) findOne(ctx context.Context, cond string, args ...any) (*entity.CartItem, error) {
	var itemM model.CartItemModel

	if err := withProduct(repo.db.WithContext(ctx)).
		Where(cond, args...).
		First(&itemM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCartItemNotFound
		}

		return nil, errors.Wrap(err, "failed to find cart item")
	}

	return toCartItemDomain(&itemM), nil
}

// addQuantitySQL inserts or increments a line only while the resulting
// quantity fits the product's stock, so concurrent adds cannot overshoot it.
const addQuantitySQL = `
INSERT INTO cart_items (user_id, product_id, quantity, created_at, updated_at)
SELECT @user_id, p.id, @qty, @now, @now
FROM products p
WHERE p.id = @product_id AND p.deleted_at IS NULL AND p.stock >= @qty
ON CONFLICT (user_id, product_id) DO UPDATE
SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = EXCLUDED.updated_at
WHERE cart_items.quantity + EXCLUDED.quantity <= (
	SELECT stock FROM products WHERE id = EXCLUDED.product_id
)`

// AddQuantity inserts the line or increments its quantity in one statement.
// It returns repository.ErrInsufficientStock when the new quantity would
// exceed the product's stock or the product is gone.
func (repo *cartRepository) AddQuantity(ctx context.Context, userID, productID uuid.UUID, qty int) error {
	result := repo.db.WithContext(ctx).Exec(addQuantitySQL, map[string]any{
		"user_id":    userID,
		"product_id": productID,
		"qty":        qty,
		"now":        time.Now(),
	})

	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return repository.ErrProductNotFound
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to add item to cart")
	}

	if result.RowsAffected == 0 {
		return repository.ErrInsufficientStock
	}

	return nil
}

// SetQuantity overwrites the quantity of one of the user's lines.
func (repo *cartRepository) SetQuantity(ctx context.Context, userID, itemID uuid.UUID, qty int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CartItemModel{}).
		Where("user_id = ? AND id = ?", userID, itemID).
		Updates(map[string]any{"quantity": qty, "updated_at": time.Now()})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update cart item")
	}

	if result.RowsAffected == 0 {
		return repository.ErrCartItemNotFound
	}

	return nil
}

// DeleteItem removes one of the user's lines.
func (repo *cartRepository) DeleteItem(ctx context.Context, userID, itemID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, itemID).
		Delete(&model.CartItemModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to remove cart item")
	}

	if result.RowsAffected == 0 {
		return repository.ErrCartItemNotFound
	}

	return nil
}

// ClearByUser empties the cart.
func (repo *cartRepository) ClearByUser(ctx context.Context, userID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartItemModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to clear cart")
	}

	return nil
}

// --- Mapper Functions ---

func toCartItemDomain(data *model.CartItemModel) *entity.CartItem {
	if data == nil {
		return nil
	}

	return &entity.CartItem{
		ID:        data.ID,
		UserID:    data.UserID,
		ProductID: data.ProductID,
		Quantity:  data.Quantity,
		Product:   toProductDomain(data.Product),
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
