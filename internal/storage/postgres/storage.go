package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/ZeinabAndPixel/Z-One-Laptop/internal/domain/errors"
	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/domain/model"
	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool the storage relies on; pgxmock pools
// satisfy it in tests.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type productRepository struct {
	storage *Storage
}

type customerRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Products() repository.ProductRepository {
	return &productRepository{storage: s}
}

func (s *Storage) Customers() repository.CustomerRepository {
	return &customerRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            email TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            full_name TEXT NOT NULL DEFAULT '',
            role TEXT NOT NULL DEFAULT 'customer',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            id UUID PRIMARY KEY,
            name TEXT NOT NULL,
            category TEXT NOT NULL,
            brand TEXT NOT NULL DEFAULT '',
            price NUMERIC(12,2) NOT NULL,
            stock INT NOT NULL DEFAULT 0 CHECK (stock >= 0),
            image_url TEXT NOT NULL DEFAULT '',
            description TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS customers (
            national_id TEXT PRIMARY KEY,
            full_name TEXT NOT NULL,
            phone TEXT NOT NULL,
            email TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id UUID PRIMARY KEY,
            customer_name TEXT NOT NULL,
            customer_national_id TEXT NOT NULL,
            customer_phone TEXT NOT NULL DEFAULT '',
            total NUMERIC(12,2) NOT NULL,
            payment_method TEXT NOT NULL,
            payment_reference TEXT,
            payment_proof_url TEXT,
            status TEXT NOT NULL,
            items JSONB NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_national_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, email, passwordHash, fullName string, role model.Role) (*model.User, error) {
	const query = `INSERT INTO users (email, password_hash, full_name, role) VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, email, passwordHash, fullName, role).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Email = email
	u.PasswordHash = passwordHash
	u.FullName = fullName
	u.Role = role
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT id, email, password_hash, full_name, role, created_at FROM users WHERE email=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, email, password_hash, full_name, role, created_at FROM users WHERE id=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// --- ProductRepository implementation ---

func (r *productRepository) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	const query = `INSERT INTO products (id, name, category, brand, price, stock, image_url, description)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
                   RETURNING created_at`
	created := *product
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	err := r.storage.pool.QueryRow(ctx, query,
		created.ID, created.Name, created.Category, created.Brand,
		created.Price, created.Stock, created.ImageURL, created.Description,
	).Scan(&created.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &created, nil
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	const query = `UPDATE products SET name=$1, category=$2, brand=$3, price=$4, image_url=$5, description=$6 WHERE id=$7`
	tag, err := r.storage.pool.Exec(ctx, query,
		product.Name, product.Category, product.Brand, product.Price,
		product.ImageURL, product.Description, product.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	const query = `SELECT id, name, category, brand, price, stock, image_url, description, created_at
                   FROM products WHERE id=$1`
	var p model.Product
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Category, &p.Brand, &p.Price, &p.Stock, &p.ImageURL, &p.Description, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) List(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	query := `SELECT id, name, category, brand, price, stock, image_url, description, created_at FROM products`
	var (
		conds []string
		args  []any
	)
	if filter.Category != "" {
		args = append(args, filter.Category)
		conds = append(conds, fmt.Sprintf("category=$%d", len(args)))
	}
	if filter.InStockOnly {
		conds = append(conds, "stock > 0")
	}
	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY name"

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Brand, &p.Price, &p.Stock, &p.ImageURL, &p.Description, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *productRepository) AdjustStock(ctx context.Context, id string, delta int) (int, error) {
	const query = `UPDATE products SET stock = stock + $1 WHERE id=$2 AND stock + $1 >= 0 RETURNING stock`
	var stock int
	err := r.storage.pool.QueryRow(ctx, query, delta, id).Scan(&stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			const exists = `SELECT 1 FROM products WHERE id=$1`
			var one int
			if err := r.storage.pool.QueryRow(ctx, exists, id).Scan(&one); err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return 0, domainErrors.ErrNotFound
				}
				return 0, err
			}
			return 0, domainErrors.ErrInsufficientStock
		}
		return 0, err
	}
	return stock, nil
}

// --- CustomerRepository implementation ---

const upsertCustomerQuery = `INSERT INTO customers (national_id, full_name, phone, email)
                             VALUES ($1, $2, $3, NULLIF($4, ''))
                             ON CONFLICT (national_id) DO UPDATE
                             SET full_name = EXCLUDED.full_name,
                                 phone = EXCLUDED.phone,
                                 email = COALESCE(EXCLUDED.email, customers.email),
                                 updated_at = NOW()`

func (r *customerRepository) Upsert(ctx context.Context, customer *model.Customer) error {
	_, err := r.storage.pool.Exec(ctx, upsertCustomerQuery,
		customer.NationalID, customer.FullName, customer.Phone, customer.Email)
	return err
}

func (r *customerRepository) GetByNationalID(ctx context.Context, nationalID string) (*model.Customer, error) {
	const query = `SELECT national_id, full_name, phone, COALESCE(email, ''), created_at, updated_at
                   FROM customers WHERE national_id=$1`
	var c model.Customer
	err := r.storage.pool.QueryRow(ctx, query, nationalID).Scan(
		&c.NationalID, &c.FullName, &c.Phone, &c.Email, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// --- OrderRepository implementation ---

const (
	lockProductQuery    = `SELECT name, image_url, price FROM products WHERE id=$1 FOR UPDATE`
	decrementStockQuery = `UPDATE products SET stock = stock - $1 WHERE id=$2 AND stock >= $1`
	restoreStockQuery   = `UPDATE products SET stock = stock + $1 WHERE id=$2`
	insertOrderQuery    = `INSERT INTO orders (id, customer_name, customer_national_id, customer_phone, total, payment_method, payment_reference, payment_proof_url, status, items)
                           VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), $9, $10)
                           RETURNING created_at`
	selectOrderColumns = `id, customer_name, customer_national_id, customer_phone, total, payment_method,
                          COALESCE(payment_reference, ''), COALESCE(payment_proof_url, ''), status, items, created_at`
)

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		o     model.Order
		items []byte
	)
	err := row.Scan(
		&o.ID, &o.CustomerName, &o.CustomerNationalID, &o.CustomerPhone,
		&o.Total, &o.PaymentMethod, &o.PaymentReference, &o.PaymentProofURL,
		&o.Status, &items, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("decode order items: %w", err)
	}
	return &o, nil
}

// Place runs the order placement transaction: per line it locks the product
// row, snapshots name/image/price and decrements stock only when enough
// remains; then it upserts the customer and inserts the order row. Any
// failure rolls the whole transaction back.
func (r *orderRepository) Place(ctx context.Context, req repository.PlacementRequest) (*model.Order, error) {
	order := &model.Order{
		ID:                 uuid.NewString(),
		CustomerName:       req.Customer.FullName,
		CustomerNationalID: req.Customer.NationalID,
		CustomerPhone:      req.Customer.Phone,
		PaymentMethod:      req.PaymentMethod,
		PaymentReference:   req.PaymentRef,
		PaymentProofURL:    req.PaymentProofURL,
		Status:             model.OrderStatusPending,
	}

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		for _, line := range req.Lines {
			item := model.LineItem{ProductID: line.ProductID, Quantity: line.Quantity}
			err := tx.QueryRow(ctx, lockProductQuery, line.ProductID).Scan(&item.Name, &item.ImageURL, &item.UnitPrice)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return fmt.Errorf("product %s: %w", line.ProductID, domainErrors.ErrNotFound)
				}
				return err
			}

			tag, err := tx.Exec(ctx, decrementStockQuery, line.Quantity, line.ProductID)
			if err != nil {
				return err
			}
			if tag.RowsAffected() == 0 {
				return fmt.Errorf("product %s: %w", line.ProductID, domainErrors.ErrInsufficientStock)
			}

			order.Items = append(order.Items, item)
		}
		order.Total = model.OrderTotal(order.Items)

		if _, err := tx.Exec(ctx, upsertCustomerQuery,
			req.Customer.NationalID, req.Customer.FullName, req.Customer.Phone, req.Customer.Email); err != nil {
			return err
		}

		items, err := json.Marshal(order.Items)
		if err != nil {
			return fmt.Errorf("encode order items: %w", err)
		}
		return tx.QueryRow(ctx, insertOrderQuery,
			order.ID, order.CustomerName, order.CustomerNationalID, order.CustomerPhone,
			order.Total, order.PaymentMethod, order.PaymentReference, order.PaymentProofURL,
			order.Status, items,
		).Scan(&order.CreatedAt)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	query := `SELECT ` + selectOrderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	query := `SELECT ` + selectOrderColumns + ` FROM orders`
	var args []any
	if filter.CustomerNationalID != "" {
		query += ` WHERE customer_national_id=$1`
		args = append(args, filter.CustomerNationalID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateStatus writes the target status inside one transaction. When the
// target is cancelled and the order is not already cancelled, stock for every
// stored line item is restored before the status write, so restitution and
// the status change commit or roll back together.
func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, model.OrderStatus, error) {
	lockQuery := `SELECT ` + selectOrderColumns + ` FROM orders WHERE id=$1 FOR UPDATE`
	var (
		order    *model.Order
		previous model.OrderStatus
	)
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		order, err = scanOrder(tx.QueryRow(ctx, lockQuery, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		previous = order.Status

		if status == model.OrderStatusCancelled && previous != model.OrderStatusCancelled {
			for _, item := range order.Items {
				if _, err := tx.Exec(ctx, restoreStockQuery, item.Quantity, item.ProductID); err != nil {
					return err
				}
			}
		}

		if _, err := tx.Exec(ctx, `UPDATE orders SET status=$1 WHERE id=$2`, status, id); err != nil {
			return err
		}
		order.Status = status
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return order, previous, nil
}

// CancelIfPending is the expiry path: the check and the cancellation share
// one transaction, so an order paid after the expiry scan is never clawed
// back.
func (r *orderRepository) CancelIfPending(ctx context.Context, id string) (*model.Order, bool, error) {
	lockQuery := `SELECT ` + selectOrderColumns + ` FROM orders WHERE id=$1 FOR UPDATE`
	var (
		order     *model.Order
		cancelled bool
	)
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		order, err = scanOrder(tx.QueryRow(ctx, lockQuery, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		if order.Status != model.OrderStatusPending {
			return nil
		}

		for _, item := range order.Items {
			if _, err := tx.Exec(ctx, restoreStockQuery, item.Quantity, item.ProductID); err != nil {
				return err
			}
		}
		if _, err := tx.Exec(ctx, `UPDATE orders SET status=$1 WHERE id=$2`, model.OrderStatusCancelled, id); err != nil {
			return err
		}
		order.Status = model.OrderStatusCancelled
		cancelled = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return order, cancelled, nil
}

func (r *orderRepository) SelectExpiredPending(ctx context.Context, cutoff time.Time, limit int) ([]string, error) {
	const query = `SELECT id FROM orders
                   WHERE status=$1 AND created_at < $2
                   ORDER BY created_at
                   LIMIT $3
                   FOR UPDATE SKIP LOCKED`

	var ids []string
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, model.OrderStatusPending, cutoff, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
