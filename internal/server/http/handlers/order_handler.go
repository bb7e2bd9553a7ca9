package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/ZeinabAndPixel/Z-One-Laptop/internal/domain/errors"
	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/domain/model"
	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/server/http/dto"
)

// OrderHandler serves order queries and the staff lifecycle endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// ListByCustomer handles GET /api/orders?customer_id=. The customer filter is
// mandatory on the public surface; unfiltered listing is a staff operation.
func (h *OrderHandler) ListByCustomer(c *gin.Context) {
	customerID := c.Query("customer_id")
	if customerID == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	orders, err := h.facade.OrdersByCustomer(c.Request.Context(), customerID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidCustomerID) {
			c.Status(http.StatusUnprocessableEntity)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, toOrderResponses(orders))
}

// List handles GET /api/staff/orders.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.AllOrders(c.Request.Context(), CurrentRole(c))
	if err != nil {
		h.writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponses(orders))
}

// Get handles GET /api/staff/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.facade.Order(c.Request.Context(), CurrentRole(c), c.Param("id"))
	if err != nil {
		h.writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// UpdateStatus handles PATCH /api/staff/orders/:id/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req dto.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	target, ok := model.ParseOrderStatus(req.Status)
	if !ok {
		c.Status(http.StatusUnprocessableEntity)
		return
	}

	order, err := h.facade.UpdateOrderStatus(c.Request.Context(), CurrentRole(c), c.Param("id"), target)
	if err != nil {
		h.writeOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

func (h *OrderHandler) writeOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrForbidden):
		c.Status(http.StatusForbidden)
	case errors.Is(err, domainErrors.ErrNotFound):
		c.Status(http.StatusNotFound)
	case errors.Is(err, domainErrors.ErrInvalidStatus):
		c.Status(http.StatusUnprocessableEntity)
	default:
		c.Status(http.StatusInternalServerError)
	}
}

func toOrderResponses(orders []model.Order) []dto.OrderResponse {
	response := make([]dto.OrderResponse, 0, len(orders))
	for _, order := range orders {
		response = append(response, toOrderResponse(order))
	}
	return response
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	items := make([]dto.LineItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.LineItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			ImageURL:  item.ImageURL,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}
	return dto.OrderResponse{
		ID:                 order.ID,
		CustomerName:       order.CustomerName,
		CustomerNationalID: order.CustomerNationalID,
		CustomerPhone:      order.CustomerPhone,
		Total:              order.Total,
		PaymentMethod:      string(order.PaymentMethod),
		PaymentReference:   order.PaymentReference,
		PaymentProofURL:    order.PaymentProofURL,
		Status:             string(order.Status),
		Items:              items,
		CreatedAt:          order.CreatedAt,
	}
}
