package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/ZeinabAndPixel/Z-One-Laptop/internal/domain/errors"
	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/domain/model"
	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/domain/repository"
	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/server/http/dto"
)

// CheckoutHandler turns cart payloads into placed orders.
type CheckoutHandler struct {
	facade CheckoutFacade
}

// NewCheckoutHandler constructs CheckoutHandler.
func NewCheckoutHandler(facade CheckoutFacade) *CheckoutHandler {
	return &CheckoutHandler{facade: facade}
}

// Checkout handles POST /api/checkout.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	lines := make([]repository.CartLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, repository.CartLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	placement := repository.PlacementRequest{
		Customer: model.Customer{
			FullName:   req.Customer.FullName,
			NationalID: req.Customer.NationalID,
			Phone:      req.Customer.Phone,
			Email:      req.Customer.Email,
		},
		Lines:           lines,
		PaymentMethod:   model.PaymentMethod(req.Payment.Method),
		PaymentRef:      req.Payment.Reference,
		PaymentProofURL: req.Payment.ProofURL,
	}

	order, err := h.facade.PlaceOrder(c.Request.Context(), placement)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInsufficientStock):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, domainErrors.ErrNotFound):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, domainErrors.ErrInvalidCustomerID),
			errors.Is(err, domainErrors.ErrEmptyCart),
			errors.Is(err, domainErrors.ErrInvalidQuantity),
			errors.Is(err, domainErrors.ErrInvalidPaymentMethod):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(*order))
}
