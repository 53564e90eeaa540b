package models

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
)

// forceStatus moves an order without going through the workflow package.
func forceStatus(t *testing.T, s *Store, id string, status OrderStatus) {
	t.Helper()
	err := s.Update(context.Background(), func(tx *Tx) error {
		o, err := tx.Order(id)
		if err != nil {
			return err
		}
		o.Status = status
		return nil
	})
	if err != nil {
		t.Fatalf("forceStatus: %v", err)
	}
}

func TestDashboard(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 7; i++ {
		o, err := s.CreateOrder(ctx, NewOrder{SupplierId: "SUP01", Lines: []NewOrderLine{{ItemId: "BRG02", Qty: i + 1}}})
		if err != nil {
			t.Fatalf("CreateOrder: %v", err)
		}
		ids = append(ids, o.ID)
	}
	forceStatus(t, s, ids[0], OrderStatusInvoiced) // 250,000
	forceStatus(t, s, ids[1], OrderStatusInvoiced) // 500,000
	forceStatus(t, s, ids[2], OrderStatusPaid)

	stats := s.Dashboard()
	if !stats.OutstandingDebt.Equal(decimal.NewFromInt(750000)) || stats.UnpaidInvoices != 2 {
		t.Fatalf("debt %s / unpaid %d", stats.OutstandingDebt, stats.UnpaidInvoices)
	}
	if stats.PendingApprovals != 4 || stats.TotalOrders != 7 {
		t.Fatalf("pending %d / total %d", stats.PendingApprovals, stats.TotalOrders)
	}
	if len(stats.RecentOrders) != 5 || stats.RecentOrders[0].ID != ids[6] || stats.RecentOrders[4].ID != ids[2] {
		t.Fatalf("unexpected recent orders %v", stats.RecentOrders)
	}
	if len(stats.LowStockItems) != 4 {
		t.Fatalf("low stock items = %d, want 4", len(stats.LowStockItems))
	}
}

func TestQueue(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	req, _ := s.RequestPurchase(ctx, []NewOrderLine{{ItemId: "RAW01"}})
	direct, _ := s.CreateOrder(ctx, NewOrder{SupplierId: "SUP02", Lines: []NewOrderLine{{ItemId: "BRG03", Qty: 1}}})
	shipped, _ := s.CreateOrder(ctx, NewOrder{SupplierId: "SUP02", Lines: []NewOrderLine{{ItemId: "BRG03", Qty: 2}}})
	forceStatus(t, s, shipped.ID, OrderStatusShipped)

	cases := []struct {
		role Role
		list string
		want []string
	}{
		{RolePurchasing, "requests", []string{req.ID}},
		{RolePurchasing, "active", []string{direct.ID, shipped.ID}},
		{RoleAccounting, "pending_approval", []string{direct.ID}},
		{RoleWarehouse, "incoming", []string{shipped.ID}},
		{RoleSupplier, "to_ship", nil},
		{RoleFinance, "unpaid", nil},
	}
	for _, tc := range cases {
		q := s.Queue(tc.role)
		got := q.Lists[tc.list]
		if len(got) != len(tc.want) {
			t.Fatalf("%s/%s: got %d orders, want %d", tc.role, tc.list, len(got), len(tc.want))
		}
		for i := range got {
			if got[i].ID != tc.want[i] {
				t.Fatalf("%s/%s[%d] = %s, want %s", tc.role, tc.list, i, got[i].ID, tc.want[i])
			}
		}
	}
	if len(s.Queue(RoleProduction).Lists) != 0 {
		t.Fatal("production has no order lists")
	}
}

func TestAccountingReport(t *testing.T) {
	s := newTestStore(t)
	err := s.Update(context.Background(), func(tx *Tx) error {
		tx.AppendJournal(JournalEntry{ID: tx.NextNumber(JournalSeries), Debit: decimal.NewFromInt(100), Credit: decimal.NewFromInt(100)})
		tx.AppendJournal(JournalEntry{ID: tx.NextNumber(JournalSeries), Debit: decimal.NewFromInt(250), Credit: decimal.NewFromInt(250)})
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	r := s.AccountingReport()
	if r.TotalTransactions != 2 || !r.TotalPurchases.Equal(decimal.NewFromInt(350)) || r.Chart == "" {
		t.Fatalf("unexpected report %+v", r)
	}
}
