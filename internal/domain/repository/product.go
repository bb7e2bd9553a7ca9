package repository

import (
	"context"

	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/domain/model"
)

// ProductFilter narrows catalog listings.
type ProductFilter struct {
	Category    string
	InStockOnly bool
}

// ProductRepository describes persistence operations for the catalog.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) (*model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, id string) (*model.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]model.Product, error)
	// AdjustStock applies delta to the stock counter, refusing to drive it
	// below zero. Returns the resulting stock level.
	AdjustStock(ctx context.Context, id string, delta int) (int, error)
}
