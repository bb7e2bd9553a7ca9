package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes the payment/fulfilment lifecycle of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ParseOrderStatus maps a raw string onto a known status.
func ParseOrderStatus(raw string) (OrderStatus, bool) {
	switch OrderStatus(raw) {
	case OrderStatusPending, OrderStatusPaid, OrderStatusDelivered, OrderStatusCancelled:
		return OrderStatus(raw), true
	}
	return "", false
}

// Terminal reports whether no further transition originates from the status.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// PaymentMethod describes how the customer pays for an order.
type PaymentMethod string

const (
	PaymentMethodInStore PaymentMethod = "in_store"
	PaymentMethodMobile  PaymentMethod = "mobile_payment"
)

// ParsePaymentMethod maps a raw string onto a known payment method.
func ParsePaymentMethod(raw string) (PaymentMethod, bool) {
	switch PaymentMethod(raw) {
	case PaymentMethodInStore, PaymentMethodMobile:
		return PaymentMethod(raw), true
	}
	return "", false
}

// LineItem is one product snapshot captured into an order at placement time.
// Name, image and unit price are frozen copies of the product row, so order
// history stays stable when the catalog changes later.
type LineItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	ImageURL  string          `json:"image_url,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// Subtotal returns unit price multiplied by quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// OrderTotal sums line item subtotals.
func OrderTotal(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, li := range items {
		total = total.Add(li.Subtotal())
	}
	return total
}

// Order describes a placed purchase. Rows are immutable once written except
// for Status; customer fields are a denormalized snapshot, not a reference.
type Order struct {
	ID                 string
	CustomerName       string
	CustomerNationalID string
	CustomerPhone      string
	Total              decimal.Decimal
	PaymentMethod      PaymentMethod
	PaymentReference   string
	PaymentProofURL    string
	Status             OrderStatus
	Items              []LineItem
	CreatedAt          time.Time
}
