package model

import "time"

// Customer is keyed by national ID. Created on first order, contact fields
// updated on subsequent orders from the same ID. There is no deletion path.
type Customer struct {
	NationalID string
	FullName   string
	Phone      string
	Email      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
