package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domainErrors "github.com/ZeinabAndPixel/Z-One-Laptop/internal/domain/errors"
	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/domain/model"
	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/domain/repository"
	pkgAuth "github.com/ZeinabAndPixel/Z-One-Laptop/internal/pkg/auth"
	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/server/http/dto"
	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/server/http/middleware"
	testhelpers "github.com/ZeinabAndPixel/Z-One-Laptop/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, method, path string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, path, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func asRole(role model.Role) func(*gin.Context) {
	return func(c *gin.Context) {
		c.Set(middleware.IdentityContextKey, pkgAuth.Identity{UserID: 1, Role: role})
	}
}

func TestCurrentIdentity(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentIdentity(c); got.UserID != 0 || got.Role != "" {
		t.Fatalf("expected zero identity when not set, got %+v", got)
	}

	c.Set(middleware.IdentityContextKey, pkgAuth.Identity{UserID: 42, Role: model.RoleAdmin})
	if got := CurrentRole(c); got != model.RoleAdmin {
		t.Fatalf("expected admin role, got %v", got)
	}
}

func TestAuthHandlerRegister(t *testing.T) {
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{})
	password := testhelpers.RandomASCIIString(16, 32)
	body, _ := json.Marshal(dto.RegisterRequest{Email: "user@example.com", Password: password, FullName: "User"})

	resp := performRequest(t, http.MethodPost, "/register", handler.Register, nil, body, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if got := resp.Header().Get("Authorization"); got != "Bearer token" {
		t.Fatalf("expected auth header, got %q", got)
	}

	resp = performRequest(t, http.MethodPost, "/register", handler.Register, nil, []byte("{bad"), nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", resp.Code)
	}

	cases := []struct {
		err  error
		code int
	}{
		{domainErrors.ErrInvalidCredentials, http.StatusBadRequest},
		{domainErrors.ErrAlreadyExists, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		failing := NewAuthHandler(testhelpers.AuthFacadeStub{
			RegisterFn: func(context.Context, string, string, string) (string, error) { return "", tc.err },
		})
		resp = performRequest(t, http.MethodPost, "/register", failing.Register, nil, body, nil)
		if resp.Code != tc.code {
			t.Fatalf("expected %d for %v, got %d", tc.code, tc.err, resp.Code)
		}
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{})
	body, _ := json.Marshal(dto.LoginRequest{Email: "user@example.com", Password: "secret"})

	resp := performRequest(t, http.MethodPost, "/login", handler.Login, nil, body, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	failing := NewAuthHandler(testhelpers.AuthFacadeStub{
		AuthenticateFn: func(context.Context, string, string) (string, error) {
			return "", domainErrors.ErrInvalidCredentials
		},
	})
	resp = performRequest(t, http.MethodPost, "/login", failing.Login, nil, body, nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodPost, "/login", handler.Login, nil, []byte("{bad"), nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", resp.Code)
	}
}

func TestCatalogHandlerList(t *testing.T) {
	var observedCategory string
	var observedInStock bool
	handler := NewCatalogHandler(testhelpers.CatalogFacadeStub{
		ProductsFn: func(_ context.Context, category string, inStockOnly bool) ([]model.Product, error) {
			observedCategory = category
			observedInStock = inStockOnly
			return []model.Product{{ID: "p1", Name: "RTX 4070", Price: decimal.NewFromInt(550), Stock: 3}}, nil
		},
	})

	resp := performRequest(t, http.MethodGet, "/products", handler.List, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !observedInStock {
		t.Fatal("storefront listing must be in-stock only by default")
	}

	var listing []dto.ProductResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &listing); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(listing) != 1 || listing[0].ID != "p1" {
		t.Fatalf("unexpected listing: %+v", listing)
	}

	router := gin.New()
	router.GET("/products", handler.List)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products?category=gpu&all=true", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if observedCategory != "gpu" || observedInStock {
		t.Fatalf("expected category filter without stock filter, got %q %v", observedCategory, observedInStock)
	}
}

func TestCatalogHandlerGet(t *testing.T) {
	handler := NewCatalogHandler(testhelpers.CatalogFacadeStub{})
	resp := performRequest(t, http.MethodGet, "/products/:id", handler.Get, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	missing := NewCatalogHandler(testhelpers.CatalogFacadeStub{
		ProductFn: func(context.Context, string) (*model.Product, error) {
			return nil, domainErrors.ErrNotFound
		},
	})
	resp = performRequest(t, http.MethodGet, "/products/:id", missing.Get, nil, nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestCatalogHandlerCreate(t *testing.T) {
	handler := NewCatalogHandler(testhelpers.CatalogFacadeStub{})
	body, _ := json.Marshal(dto.ProductRequest{Name: "RTX 4070", Category: "gpu", Price: decimal.NewFromInt(550), Stock: 3})

	resp := performRequest(t, http.MethodPost, "/products", handler.Create, asRole(model.RoleAdmin), body, nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}

	forbidden := NewCatalogHandler(testhelpers.CatalogFacadeStub{
		CreateFn: func(context.Context, model.Role, *model.Product) (*model.Product, error) {
			return nil, domainErrors.ErrForbidden
		},
	})
	resp = performRequest(t, http.MethodPost, "/products", forbidden.Create, asRole(model.RoleCashier), body, nil)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.Code)
	}

	invalid := NewCatalogHandler(testhelpers.CatalogFacadeStub{
		CreateFn: func(context.Context, model.Role, *model.Product) (*model.Product, error) {
			return nil, domainErrors.ErrInvalidProduct
		},
	})
	resp = performRequest(t, http.MethodPost, "/products", invalid.Create, asRole(model.RoleAdmin), body, nil)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodPost, "/products", handler.Create, asRole(model.RoleAdmin), []byte("{bad"), nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestCatalogHandlerRestock(t *testing.T) {
	handler := NewCatalogHandler(testhelpers.CatalogFacadeStub{
		RestockFn: func(_ context.Context, _ model.Role, _ string, delta int) (int, error) {
			return 10 + delta, nil
		},
	})
	body, _ := json.Marshal(dto.RestockRequest{Delta: 5})

	resp := performRequest(t, http.MethodPatch, "/products/:id/stock", handler.Restock, asRole(model.RoleAdmin), body, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var stock dto.StockResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &stock); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if stock.Stock != 15 {
		t.Fatalf("expected stock 15, got %d", stock.Stock)
	}

	depleted := NewCatalogHandler(testhelpers.CatalogFacadeStub{
		RestockFn: func(context.Context, model.Role, string, int) (int, error) {
			return 0, domainErrors.ErrInsufficientStock
		},
	})
	resp = performRequest(t, http.MethodPatch, "/products/:id/stock", depleted.Restock, asRole(model.RoleAdmin), body, nil)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.Code)
	}
}

func checkoutBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(dto.CheckoutRequest{
		Customer: dto.CustomerPayload{FullName: "Jane Doe", NationalID: "V12345678", Phone: "555-0100"},
		Items: []dto.CartLinePayload{
			{ProductID: "p1", Quantity: 1},
			{ProductID: "p2", Quantity: 2},
		},
		Payment: dto.PaymentPayload{Method: "in_store"},
	})
	if err != nil {
		t.Fatalf("marshal checkout: %v", err)
	}
	return body
}

func TestCheckoutHandlerSuccess(t *testing.T) {
	facade := &testhelpers.CheckoutFacadeStub{}
	handler := NewCheckoutHandler(facade)

	resp := performRequest(t, http.MethodPost, "/checkout", handler.Checkout, nil, checkoutBody(t), nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}

	var order dto.OrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &order); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if order.Status != "pending" || order.CustomerNationalID != "V12345678" {
		t.Fatalf("unexpected order: %+v", order)
	}

	if len(facade.Placed) != 1 {
		t.Fatalf("expected one placement, got %d", len(facade.Placed))
	}
	placed := facade.Placed[0]
	if len(placed.Lines) != 2 || placed.Lines[1].Quantity != 2 {
		t.Fatalf("unexpected cart lines: %+v", placed.Lines)
	}
	if placed.PaymentMethod != model.PaymentMethodInStore {
		t.Fatalf("unexpected payment method: %v", placed.PaymentMethod)
	}
}

func TestCheckoutHandlerErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domainErrors.ErrInsufficientStock, http.StatusConflict},
		{domainErrors.ErrNotFound, http.StatusUnprocessableEntity},
		{domainErrors.ErrEmptyCart, http.StatusUnprocessableEntity},
		{domainErrors.ErrInvalidCustomerID, http.StatusUnprocessableEntity},
		{domainErrors.ErrInvalidQuantity, http.StatusUnprocessableEntity},
		{domainErrors.ErrInvalidPaymentMethod, http.StatusUnprocessableEntity},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		handler := NewCheckoutHandler(&testhelpers.CheckoutFacadeStub{
			PlaceFn: func(context.Context, repository.PlacementRequest) (*model.Order, error) {
				return nil, tc.err
			},
		})
		resp := performRequest(t, http.MethodPost, "/checkout", handler.Checkout, nil, checkoutBody(t), nil)
		if resp.Code != tc.code {
			t.Fatalf("expected %d for %v, got %d", tc.code, tc.err, resp.Code)
		}
	}

	handler := NewCheckoutHandler(&testhelpers.CheckoutFacadeStub{})
	resp := performRequest(t, http.MethodPost, "/checkout", handler.Checkout, nil, []byte("{bad"), nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", resp.Code)
	}
}

func TestOrderHandlerListByCustomer(t *testing.T) {
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{})

	router := gin.New()
	router.GET("/orders", handler.ListByCustomer)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders?customer_id=V12345678", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var orders []dto.OrderResponse
	if err := json.Unmarshal(w.Body.Bytes(), &orders); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(orders) != 1 || orders[0].CustomerNationalID != "V12345678" {
		t.Fatalf("unexpected orders: %+v", orders)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without customer filter, got %d", w.Code)
	}

	invalid := NewOrderHandler(testhelpers.OrderFacadeStub{
		ByCustomerFn: func(context.Context, string) ([]model.Order, error) {
			return nil, domainErrors.ErrInvalidCustomerID
		},
	})
	router = gin.New()
	router.GET("/orders", invalid.ListByCustomer)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders?customer_id=bogus", nil))
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
}

func TestOrderHandlerStaffList(t *testing.T) {
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{})
	resp := performRequest(t, http.MethodGet, "/staff/orders", handler.List, asRole(model.RoleCashier), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	forbidden := NewOrderHandler(testhelpers.OrderFacadeStub{
		AllFn: func(context.Context, model.Role) ([]model.Order, error) {
			return nil, domainErrors.ErrForbidden
		},
	})
	resp = performRequest(t, http.MethodGet, "/staff/orders", forbidden.List, asRole(model.RoleCustomer), nil, nil)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.Code)
	}
}

func TestOrderHandlerUpdateStatus(t *testing.T) {
	var observedTarget model.OrderStatus
	var observedRole model.Role
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{
		UpdateStatusFn: func(_ context.Context, role model.Role, id string, target model.OrderStatus) (*model.Order, error) {
			observedRole = role
			observedTarget = target
			return &model.Order{ID: id, Status: target}, nil
		},
	})
	body, _ := json.Marshal(dto.StatusUpdateRequest{Status: "paid"})

	resp := performRequest(t, http.MethodPatch, "/staff/orders/:id/status", handler.UpdateStatus, asRole(model.RoleCashier), body, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if observedTarget != model.OrderStatusPaid || observedRole != model.RoleCashier {
		t.Fatalf("unexpected call: target=%v role=%v", observedTarget, observedRole)
	}

	body, _ = json.Marshal(dto.StatusUpdateRequest{Status: "shipped"})
	resp = performRequest(t, http.MethodPatch, "/staff/orders/:id/status", handler.UpdateStatus, asRole(model.RoleCashier), body, nil)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for unknown status, got %d", resp.Code)
	}

	body, _ = json.Marshal(dto.StatusUpdateRequest{Status: "cancelled"})
	forbidden := NewOrderHandler(testhelpers.OrderFacadeStub{
		UpdateStatusFn: func(context.Context, model.Role, string, model.OrderStatus) (*model.Order, error) {
			return nil, domainErrors.ErrForbidden
		},
	})
	resp = performRequest(t, http.MethodPatch, "/staff/orders/:id/status", forbidden.UpdateStatus, asRole(model.RoleCashier), body, nil)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for cashier cancel, got %d", resp.Code)
	}

	missing := NewOrderHandler(testhelpers.OrderFacadeStub{
		UpdateStatusFn: func(context.Context, model.Role, string, model.OrderStatus) (*model.Order, error) {
			return nil, domainErrors.ErrNotFound
		},
	})
	body, _ = json.Marshal(dto.StatusUpdateRequest{Status: "paid"})
	resp = performRequest(t, http.MethodPatch, "/staff/orders/:id/status", missing.UpdateStatus, asRole(model.RoleAdmin), body, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
