package usecase

import (
	domainErrors "github.com/ZeinabAndPixel/Z-One-Laptop/internal/domain/errors"
	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/domain/model"
)

// Operation names a privileged action checked against the role policy.
type Operation string

const (
	OperationListAllOrders     Operation = "orders:list_all"
	OperationViewOrder         Operation = "orders:view"
	OperationUpdateOrderStatus Operation = "orders:update_status"
	OperationCancelOrder       Operation = "orders:cancel"
	OperationManageInventory   Operation = "inventory:manage"
)

// policy is the single source of truth for role-gated operations. Cancelling
// an order is a manager action, so it belongs to admin alone; cashiers move
// orders through paid and delivered.
var policy = map[Operation]map[model.Role]bool{
	OperationListAllOrders:     {model.RoleCashier: true, model.RoleAdmin: true},
	OperationViewOrder:         {model.RoleCashier: true, model.RoleAdmin: true},
	OperationUpdateOrderStatus: {model.RoleCashier: true, model.RoleAdmin: true},
	OperationCancelOrder:       {model.RoleAdmin: true},
	OperationManageInventory:   {model.RoleAdmin: true},
}

// Authorize checks the role policy for op. Every privileged use case calls
// this before touching storage; nothing is left to client-side gating.
func Authorize(role model.Role, op Operation) error {
	if policy[op][role] {
		return nil
	}
	return domainErrors.ErrForbidden
}
