package repository

import (
	"context"

	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/domain/model"
)

// CustomerRepository describes persistence operations for customers.
type CustomerRepository interface {
	// Upsert inserts the customer or, when the national ID is already known,
	// refreshes name and phone and keeps a previously stored email unless a
	// new one is supplied.
	Upsert(ctx context.Context, customer *model.Customer) error
	GetByNationalID(ctx context.Context, nationalID string) (*model.Customer, error)
}
