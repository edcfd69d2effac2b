package impl

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type orderService struct {
	orderRepo repository.OrderRepository
	qrService service.QRCodeService
	exporter  service.SpreadsheetExporter
	metrics   service.BusinessMetrics
	notifier  orderNotifier
	logger    *slog.Logger
	now       func() time.Time
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	OrderRepo repository.OrderRepository
	QRService service.QRCodeService
	Exporter  service.SpreadsheetExporter
	Metrics   service.BusinessMetrics
	Publisher service.EventPublisher
	Feed      service.OrderFeed
	Logger    *slog.Logger
}

// NewOrderService creates the order use case.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		orderRepo: params.OrderRepo,
		qrService: params.QRService,
		exporter:  params.Exporter,
		metrics:   params.Metrics,
		notifier:  orderNotifier{publisher: params.Publisher, feed: params.Feed},
		logger:    params.Logger,
		now:       time.Now,
	}
}

func (s *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, s.logger)
}

func (s *orderService) ListUserOrders(ctx context.Context, userID uuid.UUID, page entity.Pagination) (*entity.Page[*entity.Order], error) {
	page = page.Normalize()
	orders, total, err := s.orderRepo.List(ctx, entity.OrderFilter{UserID: &userID, Pagination: page})
	if err != nil {
		return nil, dataError(err, "failed to fetch orders")
	}

	return entity.NewPage(orders, total, page), nil
}

func (s *orderService) GetOrder(ctx context.Context, viewer usecase.Viewer, orderID uuid.UUID) (*entity.Order, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	// Other customers' orders are reported as missing.
	if !viewer.IsAdmin && order.UserID != viewer.UserID {
		return nil, errors.Wrap(domainerrors.ErrOrderNotFound, "order belongs to another user")
	}

	return order, nil
}

func (s *orderService) ReceiptQR(ctx context.Context, viewer usecase.Viewer, orderID uuid.UUID) ([]byte, error) {
	order, err := s.GetOrder(ctx, viewer, orderID)
	if err != nil {
		return nil, err
	}

	png, err := s.qrService.GenerateReceiptQR(order.ID)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrInternalError, err.Error())
	}

	return png, nil
}

func (s *orderService) ListOrders(ctx context.Context, status string, page entity.Pagination) (*entity.Page[*entity.Order], error) {
	filter, err := statusFilter(status)
	if err != nil {
		return nil, err
	}

	filter.Pagination = page.Normalize()
	orders, total, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, dataError(err, "failed to fetch orders")
	}

	return entity.NewPage(orders, total, filter.Pagination), nil
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, input usecase.UpdateOrderStatusInput) (*entity.Order, error) {
	status := entity.OrderStatus(strings.TrimSpace(input.Status))
	if !status.IsValid() {
		return nil, errors.Wrapf(domainerrors.ErrInvalidOrderStatus, "unknown status %q", input.Status)
	}

	var tracking *string
	if input.TrackingNumber != nil {
		trimmed := strings.TrimSpace(*input.TrackingNumber)
		tracking = &trimmed
	}
	if status.RequiresTrackingNumber() && (tracking == nil || *tracking == "") {
		return nil, errors.Wrap(domainerrors.ErrTrackingNumberRequired, "tracking number missing")
	}

	current, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	previous := current.Status

	change := entity.OrderStatusChange{Status: status, TrackingNumber: tracking, Notes: input.Notes}
	if err := s.orderRepo.UpdateStatus(ctx, orderID, change); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, errors.Wrap(domainerrors.ErrOrderNotFound, "order not found")
		}

		return nil, dataError(err, "failed to update order status")
	}

	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	s.metrics.OrderStatusChanged(string(status))
	s.log(ctx).Info("Order status changed",
		slog.Any("orderID", orderID),
		slog.String("from", string(previous)),
		slog.String("to", string(status)),
	)
	s.notifier.notify(ctx, s.log(ctx), newOrderEvent(ctx, EventOrderStatusChanged, order, previous, s.now()))

	return order, nil
}

func (s *orderService) LookupByReceipt(ctx context.Context, qrData string) (*entity.Order, error) {
	orderID, err := s.qrService.ParseReceiptQR(qrData)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrInvalidReceipt, err.Error())
	}

	return s.findOrder(ctx, orderID)
}

func (s *orderService) ExportOrders(ctx context.Context, w io.Writer, status string) error {
	filter, err := statusFilter(status)
	if err != nil {
		return err
	}

	var orders []*entity.Order
	for page := 1; ; page++ {
		filter.Pagination = entity.Pagination{Page: page, Limit: entity.MaxPageSize}
		batch, total, err := s.orderRepo.List(ctx, filter)
		if err != nil {
			return dataError(err, "failed to export orders")
		}

		orders = append(orders, batch...)
		if len(batch) == 0 || int64(len(orders)) >= total {
			break
		}
	}

	if err := s.exporter.ExportOrders(w, orders); err != nil {
		return errors.Wrap(domainerrors.ErrInternalError, err.Error())
	}
	s.log(ctx).Info("Orders exported", slog.Int("count", len(orders)), slog.String("status", status))

	return nil
}

func (s *orderService) findOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, errors.Wrap(domainerrors.ErrOrderNotFound, "order not found")
		}

		return nil, dataError(err, "failed to fetch order")
	}

	return order, nil
}

// statusFilter accepts an empty status or "all" as no filter.
func statusFilter(status string) (entity.OrderFilter, error) {
	status = strings.TrimSpace(status)
	if status == "" || status == "all" {
		return entity.OrderFilter{}, nil
	}

	s := entity.OrderStatus(status)
	if !s.IsValid() {
		return entity.OrderFilter{}, errors.Wrapf(domainerrors.ErrInvalidOrderStatus, "unknown status %q", status)
	}

	return entity.OrderFilter{Status: s}, nil
}
