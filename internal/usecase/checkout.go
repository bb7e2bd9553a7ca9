package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/cache"
	domainErrors "github.com/ZeinabAndPixel/Z-One-Laptop/internal/domain/errors"
	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/domain/model"
	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/domain/repository"
	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/events"
)

// CheckoutUseCase runs order placement on top of the placement transaction.
type CheckoutUseCase struct {
	orders    repository.OrderRepository
	cache     cache.Store
	publisher events.Publisher
	logger    *slog.Logger
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(orders repository.OrderRepository, store cache.Store, publisher events.Publisher, logger *slog.Logger) *CheckoutUseCase {
	return &CheckoutUseCase{orders: orders, cache: store, publisher: publisher, logger: logger}
}

// PlaceOrder validates the cart and customer profile, then delegates to the
// all-or-nothing placement transaction. On success the catalog cache is
// invalidated (stock changed) and an order-placed event is published
// best-effort.
func (u *CheckoutUseCase) PlaceOrder(ctx context.Context, req repository.PlacementRequest) (*model.Order, error) {
	req.Customer.FullName = strings.TrimSpace(req.Customer.FullName)
	req.Customer.NationalID = strings.TrimSpace(req.Customer.NationalID)
	req.Customer.Phone = strings.TrimSpace(req.Customer.Phone)

	if req.Customer.FullName == "" || req.Customer.Phone == "" {
		return nil, domainErrors.ErrInvalidCustomerID
	}
	if !ValidateNationalID(req.Customer.NationalID) {
		return nil, domainErrors.ErrInvalidCustomerID
	}
	if len(req.Lines) == 0 {
		return nil, domainErrors.ErrEmptyCart
	}
	for _, line := range req.Lines {
		if line.Quantity < 1 {
			return nil, domainErrors.ErrInvalidQuantity
		}
	}
	if _, ok := model.ParsePaymentMethod(string(req.PaymentMethod)); !ok {
		return nil, domainErrors.ErrInvalidPaymentMethod
	}
	if req.PaymentMethod == model.PaymentMethodMobile && strings.TrimSpace(req.PaymentRef) == "" {
		return nil, domainErrors.ErrInvalidPaymentMethod
	}

	order, err := u.orders.Place(ctx, req)
	if err != nil {
		return nil, err
	}

	u.cache.Invalidate(ctx)
	if err := u.publisher.PublishOrderPlaced(order); err != nil {
		u.logger.Error("publish order placed failed",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	return order, nil
}
