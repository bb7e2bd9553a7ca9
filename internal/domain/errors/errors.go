package errors

import "errors"

var (
	ErrAlreadyExists        = errors.New("already exists")
	ErrNotFound             = errors.New("not found")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrForbidden            = errors.New("operation not permitted for role")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrInvalidStatus        = errors.New("invalid order status")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidCustomerID    = errors.New("invalid customer identifier")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrInvalidQuantity      = errors.New("invalid quantity")
	ErrInvalidProduct       = errors.New("invalid product")
)
