package usecase

import (
	"context"
	"strings"

	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/cache"
	domainErrors "github.com/ZeinabAndPixel/Z-One-Laptop/internal/domain/errors"
	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/domain/model"
	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/domain/repository"
)

// CatalogUseCase serves catalog reads through the cache and applies
// admin-only inventory mutations.
type CatalogUseCase struct {
	products repository.ProductRepository
	cache    cache.Store
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(products repository.ProductRepository, store cache.Store) *CatalogUseCase {
	return &CatalogUseCase{products: products, cache: store}
}

// List returns catalog entries, cache-aside. The storefront view passes
// inStockOnly so sold-out products disappear from browsing.
func (u *CatalogUseCase) List(ctx context.Context, category string, inStockOnly bool) ([]model.Product, error) {
	key := cache.Key{Category: category, InStockOnly: inStockOnly}
	if products, ok := u.cache.Get(ctx, key); ok {
		return products, nil
	}

	products, err := u.products.List(ctx, repository.ProductFilter{Category: category, InStockOnly: inStockOnly})
	if err != nil {
		return nil, err
	}

	u.cache.Put(ctx, key, products)
	return products, nil
}

// Get fetches one product.
func (u *CatalogUseCase) Get(ctx context.Context, id string) (*model.Product, error) {
	return u.products.GetByID(ctx, id)
}

// CreateProduct adds a catalog entry.
func (u *CatalogUseCase) CreateProduct(ctx context.Context, role model.Role, product *model.Product) (*model.Product, error) {
	if err := Authorize(role, OperationManageInventory); err != nil {
		return nil, err
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	if product.Stock < 0 {
		return nil, domainErrors.ErrInvalidQuantity
	}

	created, err := u.products.Create(ctx, product)
	if err != nil {
		return nil, err
	}
	u.cache.Invalidate(ctx)
	return created, nil
}

// UpdateProduct rewrites the descriptive fields of a catalog entry. Stock is
// adjusted only through Restock so counter changes stay explicit deltas.
func (u *CatalogUseCase) UpdateProduct(ctx context.Context, role model.Role, product *model.Product) error {
	if err := Authorize(role, OperationManageInventory); err != nil {
		return err
	}
	if err := validateProduct(product); err != nil {
		return err
	}

	if err := u.products.Update(ctx, product); err != nil {
		return err
	}
	u.cache.Invalidate(ctx)
	return nil
}

// Restock applies a stock delta; a negative delta that would drive stock
// below zero is refused by the repository.
func (u *CatalogUseCase) Restock(ctx context.Context, role model.Role, id string, delta int) (int, error) {
	if err := Authorize(role, OperationManageInventory); err != nil {
		return 0, err
	}
	if delta == 0 {
		return 0, domainErrors.ErrInvalidQuantity
	}

	stock, err := u.products.AdjustStock(ctx, id, delta)
	if err != nil {
		return 0, err
	}
	u.cache.Invalidate(ctx)
	return stock, nil
}

func validateProduct(product *model.Product) error {
	if strings.TrimSpace(product.Name) == "" || strings.TrimSpace(product.Category) == "" {
		return domainErrors.ErrInvalidProduct
	}
	if product.Price.IsNegative() {
		return domainErrors.ErrInvalidProduct
	}
	return nil
}
