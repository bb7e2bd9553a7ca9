package test

import (
	"context"
	"strings"
	"time"

	domainErrors "github.com/ZeinabAndPixel/Z-One-Laptop/internal/domain/errors"
	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/domain/model"
	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, email, passwordHash, fullName string, role model.Role) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Email: email, FullName: fullName, PasswordHash: passwordHash, Role: role}
	s.Next++
	s.Users[email] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ProductRepositoryStub keeps catalog entries in-memory for tests.
type ProductRepositoryStub struct {
	CreateFn      func(context.Context, *model.Product) (*model.Product, error)
	UpdateFn      func(context.Context, *model.Product) error
	GetFn         func(context.Context, string) (*model.Product, error)
	ListFn        func(context.Context, repository.ProductFilter) ([]model.Product, error)
	AdjustStockFn func(context.Context, string, int) (int, error)

	Products []model.Product
	Adjusted []StockAdjustment
	Err      error
}

// StockAdjustment records one AdjustStock invocation.
type StockAdjustment struct {
	ProductID string
	Delta     int
}

// Create appends the product and assigns a deterministic identifier.
func (s *ProductRepositoryStub) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, product)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	created := *product
	if created.ID == "" {
		created.ID = "product-1"
	}
	s.Products = append(s.Products, created)
	return &created, nil
}

// Update replaces a stored product by ID.
func (s *ProductRepositoryStub) Update(ctx context.Context, product *model.Product) error {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, product)
	}
	if s.Err != nil {
		return s.Err
	}
	for i, p := range s.Products {
		if p.ID == product.ID {
			s.Products[i] = *product
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// GetByID returns matched product from the stored slice.
func (s *ProductRepositoryStub) GetByID(ctx context.Context, id string) (*model.Product, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	for _, p := range s.Products {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// List filters stored products by category and stock availability.
func (s *ProductRepositoryStub) List(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	result := make([]model.Product, 0, len(s.Products))
	for _, p := range s.Products {
		if filter.Category != "" && !strings.EqualFold(p.Category, filter.Category) {
			continue
		}
		if filter.InStockOnly && p.Stock <= 0 {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

// AdjustStock applies delta to the matched product, refusing negative stock.
func (s *ProductRepositoryStub) AdjustStock(ctx context.Context, id string, delta int) (int, error) {
	if s.AdjustStockFn != nil {
		return s.AdjustStockFn(ctx, id, delta)
	}
	if s.Err != nil {
		return 0, s.Err
	}
	s.Adjusted = append(s.Adjusted, StockAdjustment{ProductID: id, Delta: delta})
	for i, p := range s.Products {
		if p.ID == id {
			if p.Stock+delta < 0 {
				return 0, domainErrors.ErrInsufficientStock
			}
			s.Products[i].Stock += delta
			return s.Products[i].Stock, nil
		}
	}
	return 0, domainErrors.ErrNotFound
}

// CustomerRepositoryStub keeps customer profiles in-memory for tests.
type CustomerRepositoryStub struct {
	UpsertFn  func(context.Context, *model.Customer) error
	GetFn     func(context.Context, string) (*model.Customer, error)
	Customers map[string]*model.Customer
	Err       error
}

// Upsert inserts or refreshes a customer keyed by national ID.
func (s *CustomerRepositoryStub) Upsert(ctx context.Context, customer *model.Customer) error {
	if s.UpsertFn != nil {
		return s.UpsertFn(ctx, customer)
	}
	if s.Err != nil {
		return s.Err
	}
	if s.Customers == nil {
		s.Customers = make(map[string]*model.Customer)
	}
	stored, ok := s.Customers[customer.NationalID]
	if !ok {
		copied := *customer
		s.Customers[customer.NationalID] = &copied
		return nil
	}
	stored.FullName = customer.FullName
	stored.Phone = customer.Phone
	if customer.Email != "" {
		stored.Email = customer.Email
	}
	return nil
}

// GetByNationalID fetches a stored customer or returns not found.
func (s *CustomerRepositoryStub) GetByNationalID(ctx context.Context, nationalID string) (*model.Customer, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, nationalID)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if customer, ok := s.Customers[nationalID]; ok {
		return customer, nil
	}
	return nil, domainErrors.ErrNotFound
}

// OrderRepositoryStub allows tests to customize behaviour.
type OrderRepositoryStub struct {
	PlaceFn                func(context.Context, repository.PlacementRequest) (*model.Order, error)
	GetByIDFn              func(context.Context, string) (*model.Order, error)
	ListFn                 func(context.Context, repository.OrderFilter) ([]model.Order, error)
	UpdateStatusFn         func(context.Context, string, model.OrderStatus) (*model.Order, model.OrderStatus, error)
	SelectExpiredPendingFn func(context.Context, time.Time, int) ([]string, error)
	CancelIfPendingFn      func(context.Context, string) (*model.Order, bool, error)

	Placed      []repository.PlacementRequest
	Orders      []model.Order
	Expired     []string
	UpdateCalls []OrderStatusCall
}

// OrderStatusCall stores information about UpdateStatus invocations.
type OrderStatusCall struct {
	OrderID string
	Status  model.OrderStatus
}

// Place tracks invocations and returns configured responses.
func (s *OrderRepositoryStub) Place(ctx context.Context, req repository.PlacementRequest) (*model.Order, error) {
	s.Placed = append(s.Placed, req)
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, req)
	}
	return &model.Order{
		ID:                 "order-1",
		CustomerName:       req.Customer.FullName,
		CustomerNationalID: req.Customer.NationalID,
		CustomerPhone:      req.Customer.Phone,
		PaymentMethod:      req.PaymentMethod,
		Status:             model.OrderStatusPending,
	}, nil
}

// GetByID returns matched order either via override or stored slice.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id string) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for _, o := range s.Orders {
		if o.ID == id {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// List returns orders from the configured slice, honouring the filter.
func (s *OrderRepositoryStub) List(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	if filter.CustomerNationalID == "" {
		return s.Orders, nil
	}
	result := make([]model.Order, 0, len(s.Orders))
	for _, o := range s.Orders {
		if o.CustomerNationalID == filter.CustomerNationalID {
			result = append(result, o)
		}
	}
	return result, nil
}

// UpdateStatus records update invocations and mutates stored orders.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, model.OrderStatus, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, id, status)
	}
	s.UpdateCalls = append(s.UpdateCalls, OrderStatusCall{OrderID: id, Status: status})
	for i, o := range s.Orders {
		if o.ID == id {
			previous := o.Status
			s.Orders[i].Status = status
			order := s.Orders[i]
			return &order, previous, nil
		}
	}
	return nil, "", domainErrors.ErrNotFound
}

// SelectExpiredPending returns the configured expired order IDs.
func (s *OrderRepositoryStub) SelectExpiredPending(ctx context.Context, cutoff time.Time, limit int) ([]string, error) {
	if s.SelectExpiredPendingFn != nil {
		return s.SelectExpiredPendingFn(ctx, cutoff, limit)
	}
	if limit < len(s.Expired) {
		return s.Expired[:limit], nil
	}
	return s.Expired, nil
}

// CancelIfPending cancels a stored order only while it is still pending.
func (s *OrderRepositoryStub) CancelIfPending(ctx context.Context, id string) (*model.Order, bool, error) {
	if s.CancelIfPendingFn != nil {
		return s.CancelIfPendingFn(ctx, id)
	}
	for i, o := range s.Orders {
		if o.ID == id {
			if o.Status != model.OrderStatusPending {
				order := o
				return &order, false, nil
			}
			s.Orders[i].Status = model.OrderStatusCancelled
			order := s.Orders[i]
			return &order, true, nil
		}
	}
	return nil, false, domainErrors.ErrNotFound
}
