package models

import (
	"encoding/json"
	"errors"
)

type Role string

const (
	RoleDashboard  Role = "DASHBOARD"
	RolePurchasing Role = "PEMBELIAN"
	RoleAccounting Role = "AKUNTANSI"
	RoleSupplier   Role = "SUPPLIER"
	RoleWarehouse  Role = "GUDANG"
	RoleFinance    Role = "KEUANGAN"
	RoleProduction Role = "PRODUKSI"
)

var roles = map[string]Role{
	"DASHBOARD": RoleDashboard,
	"PEMBELIAN": RolePurchasing,
	"AKUNTANSI": RoleAccounting,
	"SUPPLIER":  RoleSupplier,
	"GUDANG":    RoleWarehouse,
	"KEUANGAN":  RoleFinance,
	"PRODUKSI":  RoleProduction,
}

// ParseRole accepts the department codes used by the front-end.
func ParseRole(s string) (Role, error) {
	r, ok := roles[s]
	if !ok {
		return "", errors.New("invalid role")
	}
	return r, nil
}

// Department is the human readable name used in order logs.
func (r Role) Department() string {
	switch r {
	case RolePurchasing:
		return "Purchasing"
	case RoleAccounting:
		return "Accounting"
	case RoleSupplier:
		return "Supplier"
	case RoleWarehouse:
		return "Warehouse"
	case RoleFinance:
		return "Finance"
	case RoleProduction:
		return "Production"
	default:
		return "Dashboard"
	}
}

func (r *Role) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return errors.New("role must be string")
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

type OrderStatus string

const (
	OrderStatusRequested OrderStatus = "Requested" // PPbb created by Production
	OrderStatusDraft     OrderStatus = "Draft"
	OrderStatusSubmitted OrderStatus = "Submitted"
	OrderStatusApproved  OrderStatus = "Approved"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusReceived  OrderStatus = "Received"
	OrderStatusRejected  OrderStatus = "Rejected"
	OrderStatusInvoiced  OrderStatus = "Invoiced"
	OrderStatusPaid      OrderStatus = "Paid"
)

var orderStatuses = map[string]OrderStatus{
	"Requested": OrderStatusRequested,
	"Draft":     OrderStatusDraft,
	"Submitted": OrderStatusSubmitted,
	"Approved":  OrderStatusApproved,
	"Shipped":   OrderStatusShipped,
	"Received":  OrderStatusReceived,
	"Rejected":  OrderStatusRejected,
	"Invoiced":  OrderStatusInvoiced,
	"Paid":      OrderStatusPaid,
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	st, ok := orderStatuses[s]
	if !ok {
		return "", errors.New("invalid order status")
	}
	return st, nil
}

func (s *OrderStatus) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return errors.New("order status must be string")
	}
	parsed, err := ParseOrderStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// IsTerminal reports whether no further transition leaves s.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusRejected || s == OrderStatusPaid
}
