package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/ZeinabAndPixel/Z-One-Laptop/internal/domain/errors"
	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/domain/model"
	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/server/http/dto"
)

// CatalogHandler serves the product catalog and admin inventory operations.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// List handles GET /api/products. The storefront sees only in-stock
// products; staff tooling passes all=true to include sold-out entries.
func (h *CatalogHandler) List(c *gin.Context) {
	category := c.Query("category")
	inStockOnly := c.Query("all") != "true"

	products, err := h.facade.Products(c.Request.Context(), category, inStockOnly)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		response = append(response, toProductResponse(p))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/products/:id.
func (h *CatalogHandler) Get(c *gin.Context) {
	product, err := h.facade.Product(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*product))
}

// Create handles POST /api/staff/products.
func (h *CatalogHandler) Create(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	product := &model.Product{
		Name:        req.Name,
		Category:    req.Category,
		Brand:       req.Brand,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		Description: req.Description,
	}

	created, err := h.facade.CreateProduct(c.Request.Context(), CurrentRole(c), product)
	if err != nil {
		h.writeInventoryError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProductResponse(*created))
}

// Update handles PUT /api/staff/products/:id.
func (h *CatalogHandler) Update(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	product := &model.Product{
		ID:          c.Param("id"),
		Name:        req.Name,
		Category:    req.Category,
		Brand:       req.Brand,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Description: req.Description,
	}

	if err := h.facade.UpdateProduct(c.Request.Context(), CurrentRole(c), product); err != nil {
		h.writeInventoryError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Restock handles PATCH /api/staff/products/:id/stock.
func (h *CatalogHandler) Restock(c *gin.Context) {
	var req dto.RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	stock, err := h.facade.Restock(c.Request.Context(), CurrentRole(c), c.Param("id"), req.Delta)
	if err != nil {
		h.writeInventoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StockResponse{Stock: stock})
}

func (h *CatalogHandler) writeInventoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrForbidden):
		c.Status(http.StatusForbidden)
	case errors.Is(err, domainErrors.ErrNotFound):
		c.Status(http.StatusNotFound)
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		c.Status(http.StatusConflict)
	case errors.Is(err, domainErrors.ErrInsufficientStock):
		c.Status(http.StatusConflict)
	case errors.Is(err, domainErrors.ErrInvalidProduct), errors.Is(err, domainErrors.ErrInvalidQuantity):
		c.Status(http.StatusUnprocessableEntity)
	default:
		c.Status(http.StatusInternalServerError)
	}
}

func toProductResponse(p model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Brand:       p.Brand,
		Price:       p.Price,
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
	}
}
