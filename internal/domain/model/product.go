package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry with its inventory counter.
type Product struct {
	ID          string
	Name        string
	Category    string
	Brand       string
	Price       decimal.Decimal
	Stock       int
	ImageURL    string
	Description string
	CreatedAt   time.Time
}
