package app

import (
	"context"
	"time"

	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/domain/model"
	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/domain/repository"
	pkgAuth "github.com/ZeinabAndPixel/Z-One-Laptop/internal/pkg/auth"
	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/usecase"
)

// StorefrontFacade aggregates the use cases behind one application surface
// consumed by the HTTP handlers and the expiry worker.
type StorefrontFacade struct {
	auth     *usecase.AuthUseCase
	catalog  *usecase.CatalogUseCase
	checkout *usecase.CheckoutUseCase
	orders   *usecase.OrderUseCase
}

func NewStorefrontFacade(auth *usecase.AuthUseCase, catalog *usecase.CatalogUseCase, checkout *usecase.CheckoutUseCase, orders *usecase.OrderUseCase) *StorefrontFacade {
	return &StorefrontFacade{auth: auth, catalog: catalog, checkout: checkout, orders: orders}
}

func (f *StorefrontFacade) Register(ctx context.Context, email, password, fullName string) (string, error) {
	_, token, err := f.auth.Register(ctx, email, password, fullName)
	return token, err
}

func (f *StorefrontFacade) Authenticate(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, email, password)
	return token, err
}

func (f *StorefrontFacade) ParseToken(token string) (pkgAuth.Identity, error) {
	return f.auth.ParseToken(token)
}

func (f *StorefrontFacade) Products(ctx context.Context, category string, inStockOnly bool) ([]model.Product, error) {
	return f.catalog.List(ctx, category, inStockOnly)
}

func (f *StorefrontFacade) Product(ctx context.Context, id string) (*model.Product, error) {
	return f.catalog.Get(ctx, id)
}

func (f *StorefrontFacade) CreateProduct(ctx context.Context, role model.Role, product *model.Product) (*model.Product, error) {
	return f.catalog.CreateProduct(ctx, role, product)
}

func (f *StorefrontFacade) UpdateProduct(ctx context.Context, role model.Role, product *model.Product) error {
	return f.catalog.UpdateProduct(ctx, role, product)
}

func (f *StorefrontFacade) Restock(ctx context.Context, role model.Role, id string, delta int) (int, error) {
	return f.catalog.Restock(ctx, role, id, delta)
}

func (f *StorefrontFacade) PlaceOrder(ctx context.Context, req repository.PlacementRequest) (*model.Order, error) {
	return f.checkout.PlaceOrder(ctx, req)
}

func (f *StorefrontFacade) OrdersByCustomer(ctx context.Context, nationalID string) ([]model.Order, error) {
	return f.orders.ListByCustomer(ctx, nationalID)
}

func (f *StorefrontFacade) AllOrders(ctx context.Context, role model.Role) ([]model.Order, error) {
	return f.orders.ListAll(ctx, role)
}

func (f *StorefrontFacade) Order(ctx context.Context, role model.Role, id string) (*model.Order, error) {
	return f.orders.Get(ctx, role, id)
}

func (f *StorefrontFacade) UpdateOrderStatus(ctx context.Context, role model.Role, id string, target model.OrderStatus) (*model.Order, error) {
	return f.orders.UpdateStatus(ctx, role, id, target)
}

func (f *StorefrontFacade) ExpiredPendingOrders(ctx context.Context, cutoff time.Time, limit int) ([]string, error) {
	return f.orders.SelectExpired(ctx, cutoff, limit)
}

func (f *StorefrontFacade) CancelExpiredOrder(ctx context.Context, id string) error {
	return f.orders.CancelExpired(ctx, id)
}
