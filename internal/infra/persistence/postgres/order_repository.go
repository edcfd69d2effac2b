package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// orderRepository implements the repository.OrderRepository interface.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{
		db: db,
	}
}

func withOrderDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("product_name ASC")
		}).
		Preload("User", func(tx *gorm.DB) *gorm.DB {
			return tx.Unscoped()
		})
}

// Create inserts the order and all of its items.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateGatewayOrder
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrProductNotFound.WrapMessage("order references a missing user or product")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt
	for i, itemM := range orderM.Items {
		order.Items[i].ID = itemM.ID
		order.Items[i].OrderID = orderM.ID
	}

	return nil
}

// FindByID loads the order with items and customer.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return repo.findOne(ctx, "id = ?", id)
}

// FindByGatewayOrderID loads the order created for a gateway order.
func (repo *orderRepository) FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*entity.Order, error) {
	return repo.findOne(ctx, "gateway_order_id = ?", gatewayOrderID)
}

func (repo *orderRepository) findOne(ctx context.Context, cond string, args ...any) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := withOrderDetails(repo.db.WithContext(ctx)).
		Where(cond, args...).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	return toOrderDomain(&orderM), nil
}

// List returns a page of orders, newest first, with items and customer.
func (repo *orderRepository) List(ctx context.Context, filter entity.OrderFilter) ([]*entity.Order, int64, error) {
	page := filter.Pagination.Normalize()
	query := repo.db.WithContext(ctx).Model(&model.OrderModel{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}

	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count orders")
	}

	var orderModels []*model.OrderModel
	if err := withOrderDetails(query).
		Order("created_at DESC, id").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&orderModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list orders")
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, total, nil
}

// UpdateStatus applies an admin status change. Nil tracking number or notes leave the column as is.
func (repo *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, change entity.OrderStatusChange) error {
	updates := map[string]any{
		"status": string(change.Status),
	}
	if change.TrackingNumber != nil {
		updates["tracking_number"] = *change.TrackingNumber
	}
	if change.Notes != nil {
		updates["notes"] = *change.Notes
	}

	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order status")
	}

	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	order := &entity.Order{
		ID:              data.ID,
		UserID:          data.UserID,
		TotalAmount:     data.TotalAmount,
		Currency:        data.Currency,
		ShippingAddress: data.ShippingAddress,
		Status:          entity.OrderStatus(data.Status),
		PaymentStatus:   entity.PaymentStatus(data.PaymentStatus),
		PaymentProvider: data.PaymentProvider,
		GatewayOrderID:  data.GatewayOrderID,
		PaymentID:       data.PaymentID,
		TrackingNumber:  data.TrackingNumber,
		Notes:           data.Notes,
		Items:           make([]*entity.OrderItem, 0, len(data.Items)),
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}

	for _, itemM := range data.Items {
		order.Items = append(order.Items, &entity.OrderItem{
			ID:              itemM.ID,
			OrderID:         itemM.OrderID,
			ProductID:       itemM.ProductID,
			ProductName:     itemM.ProductName,
			Quantity:        itemM.Quantity,
			PriceAtPurchase: itemM.PriceAtPurchase,
		})
	}

	if data.User != nil {
		order.Customer = &entity.OrderCustomer{
			ID:    data.User.ID,
			Name:  data.User.Name,
			Email: data.User.Email,
			Phone: data.User.Phone,
		}
	}

	return order
}

func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	orderM := &model.OrderModel{
		ID:              data.ID,
		UserID:          data.UserID,
		TotalAmount:     data.TotalAmount,
		Currency:        data.Currency,
		ShippingAddress: data.ShippingAddress,
		Status:          string(data.Status),
		PaymentStatus:   string(data.PaymentStatus),
		PaymentProvider: data.PaymentProvider,
		GatewayOrderID:  data.GatewayOrderID,
		PaymentID:       data.PaymentID,
		TrackingNumber:  data.TrackingNumber,
		Notes:           data.Notes,
		Items:           make([]*model.OrderItemModel, 0, len(data.Items)),
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}

	for _, item := range data.Items {
		orderM.Items = append(orderM.Items, &model.OrderItemModel{
			ID:              item.ID,
			OrderID:         item.OrderID,
			ProductID:       item.ProductID,
			ProductName:     item.ProductName,
			Quantity:        item.Quantity,
			PriceAtPurchase: item.PriceAtPurchase,
		})
	}

	return orderM
}
