package models

import (
	"github.com/shopspring/decimal"
)

const recentOrderCount = 5

type DashboardStats struct {
	OutstandingDebt  decimal.Decimal `json:"outstanding_debt"`
	UnpaidInvoices   int             `json:"unpaid_invoices"`
	PendingApprovals int             `json:"pending_approvals"`
	LowStockItems    []InventoryItem `json:"low_stock_items"`
	TotalOrders      int             `json:"total_orders"`
	RecentOrders     []Order         `json:"recent_orders"`
}

// Dashboard summarises the whole system for the management view.
func (s *Store) Dashboard() DashboardStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := DashboardStats{
		OutstandingDebt: decimal.Zero,
		LowStockItems:   []InventoryItem{},
		TotalOrders:     len(s.st.orders),
		RecentOrders:    []Order{},
	}
	for _, o := range s.st.orders {
		switch o.Status {
		case OrderStatusInvoiced:
			stats.UnpaidInvoices++
			stats.OutstandingDebt = stats.OutstandingDebt.Add(o.TotalAmount)
		case OrderStatusSubmitted:
			stats.PendingApprovals++
		}
	}
	for _, item := range s.st.inventory {
		if item.IsLowStock() {
			stats.LowStockItems = append(stats.LowStockItems, item)
		}
	}
	for i := len(s.st.orders) - 1; i >= 0 && len(stats.RecentOrders) < recentOrderCount; i-- {
		stats.RecentOrders = append(stats.RecentOrders, s.st.orders[i].Clone())
	}
	return stats
}

// RoleQueue is the work list a department sees.
type RoleQueue struct {
	Role  Role               `json:"role"`
	Lists map[string][]Order `json:"lists"`
}

// Queue builds the work lists for role from one consistent read. Production
// and Dashboard have no order lists; they work from inventory and the dashboard.
func (s *Store) Queue(role Role) RoleQueue {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := RoleQueue{Role: role, Lists: map[string][]Order{}}
	switch role {
	case RolePurchasing:
		q.Lists["requests"] = s.st.ordersWith(OrderStatusRequested)
		q.Lists["active"] = s.st.activeOrders()
	case RoleAccounting:
		q.Lists["pending_approval"] = s.st.ordersWith(OrderStatusSubmitted)
	case RoleSupplier:
		q.Lists["to_ship"] = s.st.ordersWith(OrderStatusApproved)
		q.Lists["to_invoice"] = s.st.ordersWith(OrderStatusReceived)
	case RoleWarehouse:
		q.Lists["incoming"] = s.st.ordersWith(OrderStatusShipped)
	case RoleFinance:
		q.Lists["unpaid"] = s.st.ordersWith(OrderStatusInvoiced)
		q.Lists["paid"] = s.st.ordersWith(OrderStatusPaid)
	}
	return q
}

func (st *state) activeOrders() []Order {
	all := st.ordersWith()
	out := make([]Order, 0, len(all))
	for _, o := range all {
		if o.Status != OrderStatusRequested {
			out = append(out, o)
		}
	}
	return out
}

type AccountingReport struct {
	TotalPurchases    decimal.Decimal `json:"total_purchases"`
	TotalTransactions int             `json:"total_transactions"`
	// Chart rendering is not provided.
	Chart string `json:"chart"`
}

func (s *Store) AccountingReport() AccountingReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	report := AccountingReport{
		TotalPurchases:    decimal.Zero,
		TotalTransactions: len(s.st.journals),
		Chart:             "[Chart Visualization Placeholder]",
	}
	for _, j := range s.st.journals {
		report.TotalPurchases = report.TotalPurchases.Add(j.Debit)
	}
	return report
}
