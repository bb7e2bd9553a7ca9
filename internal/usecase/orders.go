package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/cache"
	domainErrors "github.com/ZeinabAndPixel/Z-One-Laptop/internal/domain/errors"
	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/domain/model"
	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/domain/repository"
	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/events"
)

// OrderUseCase covers listing and the status lifecycle.
type OrderUseCase struct {
	orders    repository.OrderRepository
	cache     cache.Store
	publisher events.Publisher
	logger    *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, store cache.Store, publisher events.Publisher, logger *slog.Logger) *OrderUseCase {
	return &OrderUseCase{orders: orders, cache: store, publisher: publisher, logger: logger}
}

// ListByCustomer returns the orders stored under the given national ID,
// newest first. This is the customer-facing view; the filter is mandatory.
func (u *OrderUseCase) ListByCustomer(ctx context.Context, nationalID string) ([]model.Order, error) {
	if !ValidateNationalID(nationalID) {
		return nil, domainErrors.ErrInvalidCustomerID
	}
	return u.orders.List(ctx, repository.OrderFilter{CustomerNationalID: nationalID})
}

// ListAll returns every order for the staff dashboards.
func (u *OrderUseCase) ListAll(ctx context.Context, role model.Role) ([]model.Order, error) {
	if err := Authorize(role, OperationListAllOrders); err != nil {
		return nil, err
	}
	return u.orders.List(ctx, repository.OrderFilter{})
}

// Get returns one order for the staff detail view.
func (u *OrderUseCase) Get(ctx context.Context, role model.Role, id string) (*model.Order, error) {
	if err := Authorize(role, OperationViewOrder); err != nil {
		return nil, err
	}
	return u.orders.GetByID(ctx, id)
}

// UpdateStatus applies a status transition. Cancellation is an admin
// (manager) action; paid and delivered are cashier actions. Pending is never
// a valid target, it is only the initial state.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, role model.Role, id string, target model.OrderStatus) (*model.Order, error) {
	if _, ok := model.ParseOrderStatus(string(target)); !ok || target == model.OrderStatusPending {
		return nil, domainErrors.ErrInvalidStatus
	}

	op := OperationUpdateOrderStatus
	if target == model.OrderStatusCancelled {
		op = OperationCancelOrder
	}
	if err := Authorize(role, op); err != nil {
		return nil, err
	}

	order, previous, err := u.orders.UpdateStatus(ctx, id, target)
	if err != nil {
		return nil, err
	}

	if target == model.OrderStatusCancelled && previous != model.OrderStatusCancelled {
		u.cache.Invalidate(ctx)
	}
	if err := u.publisher.PublishStatusChanged(order, previous); err != nil {
		u.logger.Error("publish status changed failed",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	return order, nil
}

// SelectExpired returns pending orders older than cutoff for the expiry
// worker.
func (u *OrderUseCase) SelectExpired(ctx context.Context, cutoff time.Time, limit int) ([]string, error) {
	return u.orders.SelectExpiredPending(ctx, cutoff, limit)
}

// CancelExpired cancels one overaged pending order on behalf of the expiry
// worker; it bypasses the role policy because the worker acts as the house.
// An order that was paid between the scan and this call is left untouched.
func (u *OrderUseCase) CancelExpired(ctx context.Context, id string) error {
	order, cancelled, err := u.orders.CancelIfPending(ctx, id)
	if err != nil {
		return err
	}
	if !cancelled {
		return nil
	}

	u.cache.Invalidate(ctx)
	if err := u.publisher.PublishStatusChanged(order, model.OrderStatusPending); err != nil {
		u.logger.Error("publish status changed failed",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}
	return nil
}
