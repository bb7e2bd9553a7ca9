package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRequest describes create/update payloads for catalog entries.
type ProductRequest struct {
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Brand       string          `json:"brand"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	ImageURL    string          `json:"image_url"`
	Description string          `json:"description"`
}

// ProductResponse describes one catalog entry.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Brand       string          `json:"brand"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	ImageURL    string          `json:"image_url,omitempty"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// RestockRequest applies a stock delta to one product.
type RestockRequest struct {
	Delta int `json:"delta"`
}

// StockResponse returns the stock level after a restock.
type StockResponse struct {
	Stock int `json:"stock"`
}
