package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerPayload is the customer profile attached to a checkout.
type CustomerPayload struct {
	FullName   string `json:"full_name"`
	NationalID string `json:"national_id"`
	Phone      string `json:"phone"`
	Email      string `json:"email,omitempty"`
}

// CartLinePayload is one cart entry: the server snapshots name and price
// itself at placement time.
type CartLinePayload struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// PaymentPayload carries the chosen payment method and, for mobile payments,
// the bank reference and optional proof image URL.
type PaymentPayload struct {
	Method    string `json:"method"`
	Reference string `json:"reference,omitempty"`
	ProofURL  string `json:"proof_url,omitempty"`
}

// CheckoutRequest describes the order placement payload.
type CheckoutRequest struct {
	Customer CustomerPayload   `json:"customer"`
	Items    []CartLinePayload `json:"items"`
	Payment  PaymentPayload    `json:"payment"`
}

// LineItemResponse is one snapshot entry of an order.
type LineItemResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	ImageURL  string          `json:"image_url,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// OrderResponse describes one order with its denormalized customer fields.
type OrderResponse struct {
	ID                 string             `json:"id"`
	CustomerName       string             `json:"customer_name"`
	CustomerNationalID string             `json:"customer_national_id"`
	CustomerPhone      string             `json:"customer_phone,omitempty"`
	Total              decimal.Decimal    `json:"total"`
	PaymentMethod      string             `json:"payment_method"`
	PaymentReference   string             `json:"payment_reference,omitempty"`
	PaymentProofURL    string             `json:"payment_proof_url,omitempty"`
	Status             string             `json:"status"`
	Items              []LineItemResponse `json:"items"`
	CreatedAt          time.Time          `json:"created_at"`
}

// StatusUpdateRequest moves an order to a new status.
type StatusUpdateRequest struct {
	Status string `json:"status"`
}
