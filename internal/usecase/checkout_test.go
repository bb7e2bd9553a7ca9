package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"

	domainErrors "github.com/ZeinabAndPixel/Z-One-Laptop/internal/domain/errors"
	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/domain/model"
	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/domain/repository"
	testhelpers "github.com/ZeinabAndPixel/Z-One-Laptop/internal/test"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func validPlacement() repository.PlacementRequest {
	return repository.PlacementRequest{
		Customer: model.Customer{
			FullName:   "Jane Doe",
			NationalID: "V12345678",
			Phone:      "555-0100",
		},
		Lines: []repository.CartLine{
			{ProductID: "p1", Quantity: 1},
			{ProductID: "p2", Quantity: 2},
		},
		PaymentMethod: model.PaymentMethodInStore,
	}
}

func TestCheckoutPlaceOrderSuccess(t *testing.T) {
	orders := &testhelpers.OrderRepositoryStub{
		PlaceFn: func(ctx context.Context, req repository.PlacementRequest) (*model.Order, error) {
			items := []model.LineItem{
				{ProductID: "p1", Name: "RTX 4070", UnitPrice: decimal.NewFromInt(10), Quantity: 1},
				{ProductID: "p2", Name: "DDR5 32GB", UnitPrice: decimal.NewFromInt(5), Quantity: 2},
			}
			return &model.Order{
				ID:                 "order-1",
				CustomerNationalID: req.Customer.NationalID,
				Total:              model.OrderTotal(items),
				Items:              items,
				Status:             model.OrderStatusPending,
			}, nil
		},
	}
	store := &testhelpers.CacheStoreStub{}
	publisher := &testhelpers.PublisherStub{}
	uc := NewCheckoutUseCase(orders, store, publisher, discardLogger())

	order, err := uc.PlaceOrder(context.Background(), validPlacement())
	if err != nil {
		t.Fatalf("place order returned error: %v", err)
	}
	if order.Status != model.OrderStatusPending {
		t.Fatalf("expected pending order, got %v", order.Status)
	}
	if !order.Total.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("expected total 20, got %s", order.Total)
	}
	if len(orders.Placed) != 1 {
		t.Fatalf("expected one placement, got %d", len(orders.Placed))
	}
	if store.Invalidations != 1 {
		t.Fatalf("expected catalog cache invalidated once, got %d", store.Invalidations)
	}
	if len(publisher.Placed) != 1 || publisher.Placed[0] != "order-1" {
		t.Fatalf("expected placed event for order-1, got %v", publisher.Placed)
	}
}

func TestCheckoutPlaceOrderTrimsProfile(t *testing.T) {
	orders := &testhelpers.OrderRepositoryStub{}
	uc := NewCheckoutUseCase(orders, &testhelpers.CacheStoreStub{}, &testhelpers.PublisherStub{}, discardLogger())

	req := validPlacement()
	req.Customer.FullName = "  Jane Doe  "
	req.Customer.NationalID = " V12345678 "
	req.Customer.Phone = " 555-0100 "

	if _, err := uc.PlaceOrder(context.Background(), req); err != nil {
		t.Fatalf("place order returned error: %v", err)
	}
	placed := orders.Placed[0]
	if placed.Customer.FullName != "Jane Doe" || placed.Customer.NationalID != "V12345678" || placed.Customer.Phone != "555-0100" {
		t.Fatalf("expected trimmed profile, got %+v", placed.Customer)
	}
}

func TestCheckoutPlaceOrderValidation(t *testing.T) {
	uc := NewCheckoutUseCase(&testhelpers.OrderRepositoryStub{}, &testhelpers.CacheStoreStub{}, &testhelpers.PublisherStub{}, discardLogger())
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*repository.PlacementRequest)
		want   error
	}{
		{"missing name", func(r *repository.PlacementRequest) { r.Customer.FullName = "" }, domainErrors.ErrInvalidCustomerID},
		{"missing phone", func(r *repository.PlacementRequest) { r.Customer.Phone = "  " }, domainErrors.ErrInvalidCustomerID},
		{"bad national id", func(r *repository.PlacementRequest) { r.Customer.NationalID = "X1" }, domainErrors.ErrInvalidCustomerID},
		{"empty cart", func(r *repository.PlacementRequest) { r.Lines = nil }, domainErrors.ErrEmptyCart},
		{"zero quantity", func(r *repository.PlacementRequest) { r.Lines[0].Quantity = 0 }, domainErrors.ErrInvalidQuantity},
		{"negative quantity", func(r *repository.PlacementRequest) { r.Lines[1].Quantity = -1 }, domainErrors.ErrInvalidQuantity},
		{"unknown payment method", func(r *repository.PlacementRequest) { r.PaymentMethod = "cheque" }, domainErrors.ErrInvalidPaymentMethod},
		{"mobile payment without reference", func(r *repository.PlacementRequest) {
			r.PaymentMethod = model.PaymentMethodMobile
			r.PaymentRef = "  "
		}, domainErrors.ErrInvalidPaymentMethod},
	}

	for _, tc := range cases {
		req := validPlacement()
		tc.mutate(&req)
		if _, err := uc.PlaceOrder(ctx, req); !errors.Is(err, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestCheckoutPlaceOrderMobilePayment(t *testing.T) {
	orders := &testhelpers.OrderRepositoryStub{}
	uc := NewCheckoutUseCase(orders, &testhelpers.CacheStoreStub{}, &testhelpers.PublisherStub{}, discardLogger())

	req := validPlacement()
	req.PaymentMethod = model.PaymentMethodMobile
	req.PaymentRef = "REF-001"

	if _, err := uc.PlaceOrder(context.Background(), req); err != nil {
		t.Fatalf("place order returned error: %v", err)
	}
}

func TestCheckoutPlaceOrderRepositoryFailure(t *testing.T) {
	orders := &testhelpers.OrderRepositoryStub{
		PlaceFn: func(context.Context, repository.PlacementRequest) (*model.Order, error) {
			return nil, domainErrors.ErrInsufficientStock
		},
	}
	store := &testhelpers.CacheStoreStub{}
	publisher := &testhelpers.PublisherStub{}
	uc := NewCheckoutUseCase(orders, store, publisher, discardLogger())

	if _, err := uc.PlaceOrder(context.Background(), validPlacement()); !errors.Is(err, domainErrors.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if store.Invalidations != 0 {
		t.Fatalf("cache must not be invalidated on failure, got %d", store.Invalidations)
	}
	if len(publisher.Placed) != 0 {
		t.Fatalf("no event must be published on failure, got %v", publisher.Placed)
	}
}

func TestCheckoutPlaceOrderPublishFailureIsNotFatal(t *testing.T) {
	publisher := &testhelpers.PublisherStub{PlacedErr: errors.New("broker down")}
	uc := NewCheckoutUseCase(&testhelpers.OrderRepositoryStub{}, &testhelpers.CacheStoreStub{}, publisher, discardLogger())

	if _, err := uc.PlaceOrder(context.Background(), validPlacement()); err != nil {
		t.Fatalf("publish failure must not fail the order, got %v", err)
	}
}
