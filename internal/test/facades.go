package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/domain/model"
	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/domain/repository"
	pkgAuth "github.com/ZeinabAndPixel/Z-One-Laptop/internal/pkg/auth"
)

// AuthFacadeStub provides controllable behaviour for auth endpoints.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string, string) (string, error)
	AuthenticateFn func(context.Context, string, string) (string, error)
	ParseFn        func(string) (pkgAuth.Identity, error)
}

// Register delegates to the override or returns a fixed token.
func (s AuthFacadeStub) Register(ctx context.Context, email, password, fullName string) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, email, password, fullName)
	}
	return "token", nil
}

// Authenticate delegates to the override or returns a fixed token.
func (s AuthFacadeStub) Authenticate(ctx context.Context, email, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return "token", nil
}

// ParseToken delegates to the override or returns an admin identity.
func (s AuthFacadeStub) ParseToken(token string) (pkgAuth.Identity, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return pkgAuth.Identity{UserID: 1, Role: model.RoleAdmin}, nil
}

// StorefrontFacadeStub aggregates the facade stubs for router level tests.
// CheckoutFacadeStub records state, so it is embedded by pointer and must be
// initialized by the caller.
type StorefrontFacadeStub struct {
	AuthFacadeStub
	CatalogFacadeStub
	*CheckoutFacadeStub
	OrderFacadeStub
}

// CatalogFacadeStub provides controllable behaviour for catalog endpoints.
type CatalogFacadeStub struct {
	ProductsFn func(context.Context, string, bool) ([]model.Product, error)
	ProductFn  func(context.Context, string) (*model.Product, error)
	CreateFn   func(context.Context, model.Role, *model.Product) (*model.Product, error)
	UpdateFn   func(context.Context, model.Role, *model.Product) error
	RestockFn  func(context.Context, model.Role, string, int) (int, error)
}

// Products delegates to the override or returns one sample product.
func (s CatalogFacadeStub) Products(ctx context.Context, category string, inStockOnly bool) ([]model.Product, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx, category, inStockOnly)
	}
	return []model.Product{{ID: "product-1", Name: "RTX 4070", Price: decimal.NewFromInt(550), Stock: 3}}, nil
}

// Product returns the configured product.
func (s CatalogFacadeStub) Product(ctx context.Context, id string) (*model.Product, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, id)
	}
	return &model.Product{ID: id, Name: "RTX 4070", Price: decimal.NewFromInt(550), Stock: 3}, nil
}

// CreateProduct echoes the product back with an assigned ID.
func (s CatalogFacadeStub) CreateProduct(ctx context.Context, role model.Role, product *model.Product) (*model.Product, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, role, product)
	}
	created := *product
	created.ID = "product-1"
	return &created, nil
}

// UpdateProduct executes the configured override.
func (s CatalogFacadeStub) UpdateProduct(ctx context.Context, role model.Role, product *model.Product) error {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, role, product)
	}
	return nil
}

// Restock applies the override or reports the delta as the new level.
func (s CatalogFacadeStub) Restock(ctx context.Context, role model.Role, id string, delta int) (int, error) {
	if s.RestockFn != nil {
		return s.RestockFn(ctx, role, id, delta)
	}
	return delta, nil
}

// CheckoutFacadeStub simulates order placement for handler tests.
type CheckoutFacadeStub struct {
	PlaceFn func(context.Context, repository.PlacementRequest) (*model.Order, error)
	Placed  []repository.PlacementRequest
}

// PlaceOrder records the request and returns a pending order.
func (s *CheckoutFacadeStub) PlaceOrder(ctx context.Context, req repository.PlacementRequest) (*model.Order, error) {
	s.Placed = append(s.Placed, req)
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, req)
	}
	return &model.Order{
		ID:                 "order-1",
		CustomerName:       req.Customer.FullName,
		CustomerNationalID: req.Customer.NationalID,
		PaymentMethod:      req.PaymentMethod,
		Status:             model.OrderStatusPending,
		CreatedAt:          time.Unix(0, 0),
	}, nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	ByCustomerFn   func(context.Context, string) ([]model.Order, error)
	AllFn          func(context.Context, model.Role) ([]model.Order, error)
	GetFn          func(context.Context, model.Role, string) (*model.Order, error)
	UpdateStatusFn func(context.Context, model.Role, string, model.OrderStatus) (*model.Order, error)
}

// OrdersByCustomer returns predefined orders for the given national ID.
func (s OrderFacadeStub) OrdersByCustomer(ctx context.Context, nationalID string) ([]model.Order, error) {
	if s.ByCustomerFn != nil {
		return s.ByCustomerFn(ctx, nationalID)
	}
	return []model.Order{{ID: "order-1", CustomerNationalID: nationalID, Status: model.OrderStatusPending}}, nil
}

// AllOrders returns the configured listing.
func (s OrderFacadeStub) AllOrders(ctx context.Context, role model.Role) ([]model.Order, error) {
	if s.AllFn != nil {
		return s.AllFn(ctx, role)
	}
	return []model.Order{{ID: "order-1", Status: model.OrderStatusPending}}, nil
}

// Order returns the configured order.
func (s OrderFacadeStub) Order(ctx context.Context, role model.Role, id string) (*model.Order, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, role, id)
	}
	return &model.Order{ID: id, Status: model.OrderStatusPending}, nil
}

// UpdateOrderStatus executes the override or echoes the target status.
func (s OrderFacadeStub) UpdateOrderStatus(ctx context.Context, role model.Role, id string, target model.OrderStatus) (*model.Order, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, role, id, target)
	}
	return &model.Order{ID: id, Status: target}, nil
}

// ExpiryFacadeStub mimics worker interactions with the storefront facade.
type ExpiryFacadeStub struct {
	Batches   [][]string
	ExpiredFn func(context.Context, time.Time, int) ([]string, error)
	CancelFn  func(context.Context, string) error

	Cancelled []string
	mu        sync.Mutex
	callCount int32
}

// Lock exposes internal mutex for external synchronization.
func (s *ExpiryFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *ExpiryFacadeStub) Unlock() { s.mu.Unlock() }

// ExpiredPendingOrders returns batches from the configured queue.
func (s *ExpiryFacadeStub) ExpiredPendingOrders(ctx context.Context, cutoff time.Time, limit int) ([]string, error) {
	if s.ExpiredFn != nil {
		return s.ExpiredFn(ctx, cutoff, limit)
	}
	call := atomic.AddInt32(&s.callCount, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// CancelExpiredOrder records cancelled order IDs.
func (s *ExpiryFacadeStub) CancelExpiredOrder(ctx context.Context, id string) error {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Cancelled = append(s.Cancelled, id)
	return nil
}
