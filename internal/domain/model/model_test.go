package model

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseOrderStatus(t *testing.T) {
	cases := []struct {
		raw  string
		want OrderStatus
		ok   bool
	}{
		{"pending", OrderStatusPending, true},
		{"paid", OrderStatusPaid, true},
		{"delivered", OrderStatusDelivered, true},
		{"cancelled", OrderStatusCancelled, true},
		{"shipped", "", false},
		{"", "", false},
		{"PAID", "", false},
	}

	for _, tc := range cases {
		got, ok := ParseOrderStatus(tc.raw)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseOrderStatus(%q) = (%v, %v), want (%v, %v)", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	if OrderStatusPending.Terminal() || OrderStatusPaid.Terminal() {
		t.Fatal("pending and paid are not terminal")
	}
	if !OrderStatusDelivered.Terminal() || !OrderStatusCancelled.Terminal() {
		t.Fatal("delivered and cancelled are terminal")
	}
}

func TestParsePaymentMethod(t *testing.T) {
	if method, ok := ParsePaymentMethod("in_store"); !ok || method != PaymentMethodInStore {
		t.Fatalf("unexpected result for in_store: %v %v", method, ok)
	}
	if method, ok := ParsePaymentMethod("mobile_payment"); !ok || method != PaymentMethodMobile {
		t.Fatalf("unexpected result for mobile_payment: %v %v", method, ok)
	}
	if _, ok := ParsePaymentMethod("cheque"); ok {
		t.Fatal("expected cheque to be rejected")
	}
}

func TestParseRole(t *testing.T) {
	for _, role := range []Role{RoleCustomer, RoleCashier, RoleAdmin} {
		if parsed, ok := ParseRole(string(role)); !ok || parsed != role {
			t.Fatalf("expected role %s to parse", role)
		}
	}
	if _, ok := ParseRole("superuser"); ok {
		t.Fatal("expected unknown role to be rejected")
	}
}

func TestLineItemSubtotalAndOrderTotal(t *testing.T) {
	items := []LineItem{
		{ProductID: "p1", UnitPrice: decimal.NewFromInt(10), Quantity: 1},
		{ProductID: "p2", UnitPrice: decimal.NewFromInt(5), Quantity: 2},
	}

	if !items[0].Subtotal().Equal(decimal.NewFromInt(10)) {
		t.Fatalf("unexpected subtotal: %s", items[0].Subtotal())
	}
	if !items[1].Subtotal().Equal(decimal.NewFromInt(10)) {
		t.Fatalf("unexpected subtotal: %s", items[1].Subtotal())
	}
	if !OrderTotal(items).Equal(decimal.NewFromInt(20)) {
		t.Fatalf("unexpected total: %s", OrderTotal(items))
	}
	if !OrderTotal(nil).Equal(decimal.Zero) {
		t.Fatalf("expected zero total for no items, got %s", OrderTotal(nil))
	}
}

func TestOrderTotalKeepsCents(t *testing.T) {
	items := []LineItem{
		{UnitPrice: decimal.RequireFromString("19.99"), Quantity: 3},
	}
	if !OrderTotal(items).Equal(decimal.RequireFromString("59.97")) {
		t.Fatalf("unexpected total: %s", OrderTotal(items))
	}
}
