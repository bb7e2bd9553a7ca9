package test

import (
	"context"
	"sync"

	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/cache"
	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/domain/model"
)

// CacheStoreStub records catalog cache traffic for tests.
type CacheStoreStub struct {
	GetFn func(context.Context, cache.Key) ([]model.Product, bool)

	mu            sync.Mutex
	Entries       map[cache.Key][]model.Product
	Invalidations int
}

// Get delegates to the override or reads the stored entries.
func (s *CacheStoreStub) Get(ctx context.Context, key cache.Key) ([]model.Product, bool) {
	if s.GetFn != nil {
		return s.GetFn(ctx, key)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	products, ok := s.Entries[key]
	return products, ok
}

// Put stores the listing under key.
func (s *CacheStoreStub) Put(ctx context.Context, key cache.Key, products []model.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Entries == nil {
		s.Entries = make(map[cache.Key][]model.Product)
	}
	s.Entries[key] = products
}

// Invalidate counts invalidations and drops stored entries.
func (s *CacheStoreStub) Invalidate(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Invalidations++
	s.Entries = nil
}

// StatusChange records one PublishStatusChanged invocation.
type StatusChange struct {
	OrderID  string
	Previous model.OrderStatus
	Status   model.OrderStatus
}

// PublisherStub captures published order events.
type PublisherStub struct {
	PlacedErr error
	StatusErr error

	mu            sync.Mutex
	Placed        []string
	StatusChanges []StatusChange
}

// PublishOrderPlaced records the order ID.
func (s *PublisherStub) PublishOrderPlaced(order *model.Order) error {
	if s.PlacedErr != nil {
		return s.PlacedErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Placed = append(s.Placed, order.ID)
	return nil
}

// PublishStatusChanged records the transition.
func (s *PublisherStub) PublishStatusChanged(order *model.Order, previous model.OrderStatus) error {
	if s.StatusErr != nil {
		return s.StatusErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.StatusChanges = append(s.StatusChanges, StatusChange{OrderID: order.ID, Previous: previous, Status: order.Status})
	return nil
}

// Close is a no-op.
func (s *PublisherStub) Close() error { return nil }
