package repository

import (
	"context"
	"time"

	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/domain/model"
)

// CartLine is an incoming order line before the product snapshot is taken.
type CartLine struct {
	ProductID string
	Quantity  int
}

// PlacementRequest carries everything the placement transaction needs.
type PlacementRequest struct {
	Customer        model.Customer
	Lines           []CartLine
	PaymentMethod   model.PaymentMethod
	PaymentRef      string
	PaymentProofURL string
}

// OrderFilter narrows order listings.
type OrderFilter struct {
	CustomerNationalID string
}

// OrderRepository describes persistence operations for orders, including the
// two multi-statement transactions of the system: placement and cancellation.
type OrderRepository interface {
	// Place runs the placement transaction: snapshot + conditional stock
	// decrement per line, customer upsert, order insert. All or nothing.
	Place(ctx context.Context, req PlacementRequest) (*model.Order, error)
	GetByID(ctx context.Context, id string) (*model.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]model.Order, error)
	// UpdateStatus writes the target status; a transition to cancelled
	// restores line item stock in the same transaction unless the order is
	// already cancelled. Returns the updated order and the status it held
	// before the write.
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, model.OrderStatus, error)
	// SelectExpiredPending picks pending orders created before cutoff,
	// skipping rows locked by concurrent workers.
	SelectExpiredPending(ctx context.Context, cutoff time.Time, limit int) ([]string, error)
	// CancelIfPending cancels the order and restores its stock only when it
	// is still pending; a paid or finished order is left untouched.
	CancelIfPending(ctx context.Context, id string) (*model.Order, bool, error)
}
