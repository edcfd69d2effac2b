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

// paymentIntentRepository implements the repository.PaymentIntentRepository interface.
// Every settling transition is a conditional UPDATE on status PENDING or EXPIRED.
type paymentIntentRepository struct {
	db *gorm.DB
}

// NewPaymentIntentRepository is the constructor for paymentIntentRepository.
func NewPaymentIntentRepository(db *gorm.DB) repository.PaymentIntentRepository {
	return &paymentIntentRepository{
		db: db,
	}
}

func (repo *paymentIntentRepository) Create(ctx context.Context, intent *entity.PaymentIntent) error {
	intentM := fromPaymentIntentDomain(intent)

	if err := repo.db.WithContext(ctx).Create(intentM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("payment intent already exists for gateway order")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create payment order")
	}

	intent.ID = intentM.ID
	intent.CreatedAt = intentM.CreatedAt
	intent.UpdatedAt = intentM.UpdatedAt

	return nil
}

func (repo *paymentIntentRepository) FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*entity.PaymentIntent, error) {
	var intentM model.PaymentIntentModel

	if err := repo.db.WithContext(ctx).
		Where("gateway_order_id = ?", gatewayOrderID).
		First(&intentM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPaymentIntentNotFound
		}

		return nil, errors.Wrap(err, "failed to find payment intent")
	}

	return toPaymentIntentDomain(&intentM), nil
}

func (repo *paymentIntentRepository) MarkVerified(ctx context.Context, id uuid.UUID, orderID uuid.UUID) error {
	return repo.transition(ctx, id, map[string]any{
		"status":   string(entity.PaymentIntentVerified),
		"order_id": orderID,
	})
}

func (repo *paymentIntentRepository) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	return repo.transition(ctx, id, map[string]any{
		"status":         string(entity.PaymentIntentFailed),
		"failure_reason": reason,
	})
}

// An EXPIRED intent can still be settled by a payment the gateway captured late.
//
//nolint:gochecknoglobals
var settleableStatuses = []string{string(entity.PaymentIntentPending), string(entity.PaymentIntentExpired)}

func (repo *paymentIntentRepository) transition(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	result := repo.db.WithContext(ctx).
		Model(&model.PaymentIntentModel{}).
		Where("id = ? AND status IN ?", id, settleableStatuses).
		Updates(updates)

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update payment order")
	}

	if result.RowsAffected == 0 {
		return repository.ErrPaymentIntentStateChanged
	}

	return nil
}

// ExpireStale moves PENDING intents whose expires_at is before now to EXPIRED.
func (repo *paymentIntentRepository) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.PaymentIntentModel{}).
		Where("status = ? AND expires_at < ?", string(entity.PaymentIntentPending), now).
		Updates(map[string]any{
			"status":         string(entity.PaymentIntentExpired),
			"failure_reason": "expired before payment was verified",
		})

	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to expire payment intents")
	}

	return result.RowsAffected, nil
}

// --- Mapper Functions ---

func toPaymentIntentDomain(data *model.PaymentIntentModel) *entity.PaymentIntent {
	if data == nil {
		return nil
	}

	items := make([]entity.IntentItem, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, entity.IntentItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	return &entity.PaymentIntent{
		ID:              data.ID,
		UserID:          data.UserID,
		Provider:        data.Provider,
		GatewayOrderID:  data.GatewayOrderID,
		Amount:          data.Amount,
		Currency:        data.Currency,
		ShippingAddress: data.ShippingAddress,
		Items:           items,
		Status:          entity.PaymentIntentStatus(data.Status),
		FailureReason:   data.FailureReason,
		OrderID:         data.OrderID,
		ExpiresAt:       data.ExpiresAt,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func fromPaymentIntentDomain(data *entity.PaymentIntent) *model.PaymentIntentModel {
	if data == nil {
		return nil
	}

	items := make([]model.PaymentIntentItem, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, model.PaymentIntentItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	status := data.Status
	if status == "" {
		status = entity.PaymentIntentPending
	}

	return &model.PaymentIntentModel{
		ID:              data.ID,
		UserID:          data.UserID,
		Provider:        data.Provider,
		GatewayOrderID:  data.GatewayOrderID,
		Amount:          data.Amount,
		Currency:        data.Currency,
		ShippingAddress: data.ShippingAddress,
		Items:           items,
		Status:          string(status),
		FailureReason:   data.FailureReason,
		OrderID:         data.OrderID,
		ExpiresAt:       data.ExpiresAt,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}
