package handlers

import (
	"context"

	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/domain/model"
	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/domain/repository"
	pkgAuth "github.com/ZeinabAndPixel/Z-One-Laptop/internal/pkg/auth"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, email, password, fullName string) (string, error)
	Authenticate(ctx context.Context, email, password string) (string, error)
	ParseToken(token string) (pkgAuth.Identity, error)
}

// CatalogFacade encapsulates catalog and inventory operations exposed via HTTP.
type CatalogFacade interface {
	Products(ctx context.Context, category string, inStockOnly bool) ([]model.Product, error)
	Product(ctx context.Context, id string) (*model.Product, error)
	CreateProduct(ctx context.Context, role model.Role, product *model.Product) (*model.Product, error)
	UpdateProduct(ctx context.Context, role model.Role, product *model.Product) error
	Restock(ctx context.Context, role model.Role, id string, delta int) (int, error)
}

// CheckoutFacade runs order placement.
type CheckoutFacade interface {
	PlaceOrder(ctx context.Context, req repository.PlacementRequest) (*model.Order, error)
}

// OrderFacade provides order listing and lifecycle operations.
type OrderFacade interface {
	OrdersByCustomer(ctx context.Context, nationalID string) ([]model.Order, error)
	AllOrders(ctx context.Context, role model.Role) ([]model.Order, error)
	Order(ctx context.Context, role model.Role, id string) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, role model.Role, id string, target model.OrderStatus) (*model.Order, error)
}

// StorefrontFacade aggregates the full set of operations used across handlers.
type StorefrontFacade interface {
	AuthFacade
	CatalogFacade
	CheckoutFacade
	OrderFacade
}
