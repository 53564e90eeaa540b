package workflow

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/mmdatafocus/procurement_backend/models"
	"github.com/mmdatafocus/procurement_backend/utils"
	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
)

func stock(t *testing.T, s *models.Store, id string) int {
	t.Helper()
	item, err := s.InventoryItem(id)
	if err != nil {
		t.Fatalf("InventoryItem(%s): %v", id, err)
	}
	return item.Stock
}

func TestReceiveGoods_MatchingDeliveryAddsStock(t *testing.T) {
	s := newTestStore(t)
	order := shippedOrder(t, s)

	got, err := ReceiveGoods(context.Background(), s, quietLogger(), order.ID, []ReceivedLine{
		{ItemId: "RAW02", QtyReceived: 3},
		{ItemId: "BRG01", QtyReceived: 2},
	})
	if err != nil {
		t.Fatalf("ReceiveGoods: %v", err)
	}
	if got.Status != models.OrderStatusReceived {
		t.Fatalf("status = %s", got.Status)
	}
	if last := got.Logs[len(got.Logs)-1]; last != "Goods received by Warehouse. Check Result: Received" {
		t.Fatalf("unexpected log %q", last)
	}
	for _, it := range got.Items {
		if it.QtyReceived == nil || *it.QtyReceived != it.QtyOrdered {
			t.Fatalf("line %s received %v", it.ItemId, it.QtyReceived)
		}
	}
	if stock(t, s, "BRG01") != 7 || stock(t, s, "RAW02") != 23 {
		t.Fatalf("stock not updated: BRG01=%d RAW02=%d", stock(t, s, "BRG01"), stock(t, s, "RAW02"))
	}
}

func TestReceiveGoods_MismatchRejects(t *testing.T) {
	cases := []struct {
		name     string
		received []ReceivedLine
	}{
		{"short delivery", []ReceivedLine{{ItemId: "BRG01", QtyReceived: 1}, {ItemId: "RAW02", QtyReceived: 3}}},
		{"over delivery", []ReceivedLine{{ItemId: "BRG01", QtyReceived: 2}, {ItemId: "RAW02", QtyReceived: 4}}},
		{"missing line", []ReceivedLine{{ItemId: "BRG01", QtyReceived: 2}}},
		{"unexpected item", []ReceivedLine{{ItemId: "BRG01", QtyReceived: 2}, {ItemId: "RAW02", QtyReceived: 3}, {ItemId: "BRG02", QtyReceived: 1}}},
		{"nothing received", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestStore(t)
			order := shippedOrder(t, s)

			got, err := ReceiveGoods(context.Background(), s, quietLogger(), order.ID, tc.received)
			if err != nil {
				t.Fatalf("ReceiveGoods: %v", err)
			}
			if got.Status != models.OrderStatusRejected {
				t.Fatalf("status = %s, want Rejected", got.Status)
			}
			if last := got.Logs[len(got.Logs)-1]; last != "Goods received by Warehouse. Check Result: Rejected" {
				t.Fatalf("unexpected log %q", last)
			}
			for _, it := range got.Items {
				if it.QtyReceived == nil {
					t.Fatalf("line %s has no received qty", it.ItemId)
				}
			}
			if stock(t, s, "BRG01") != 5 || stock(t, s, "RAW02") != 20 || stock(t, s, "BRG02") != 50 {
				t.Fatal("a rejected receipt must not touch stock")
			}
		})
	}
}

func TestReceiveGoods_Errors(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	logger := quietLogger()
	order := shippedOrder(t, s)
	approved := advance(t, s, []models.NewOrderLine{{ItemId: "BRG02", Qty: 1}}, models.OrderStatusApproved)

	if _, err := ReceiveGoods(ctx, s, logger, "SOPB-0404", nil); !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := ReceiveGoods(ctx, s, logger, approved.ID, []ReceivedLine{{ItemId: "BRG02", QtyReceived: 1}}); !errors.Is(err, utils.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition for an unshipped order, got %v", err)
	}

	var ve validator.ValidationErrors
	if _, err := ReceiveGoods(ctx, s, logger, order.ID, []ReceivedLine{{ItemId: "BRG01", QtyReceived: -2}}); !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := ReceiveGoods(ctx, s, logger, order.ID, []ReceivedLine{{ItemId: "BRG01", QtyReceived: math.MaxInt}}); !errors.As(err, &ve) {
		t.Fatalf("expected validation error for an oversized receipt, got %v", err)
	}
	if _, err := ReceiveGoods(ctx, s, logger, order.ID, []ReceivedLine{{ItemId: "BRG01", QtyReceived: 1}, {ItemId: "BRG01", QtyReceived: 1}}); !errors.Is(err, utils.ErrInvalidInput) {
		t.Fatalf("expected invalid input for duplicate lines, got %v", err)
	}

	// failed attempts leave the order shipped
	if o, _ := s.Order(order.ID); o.Status != models.OrderStatusShipped {
		t.Fatalf("status = %s", o.Status)
	}
}

func TestReceiveGoods_LogsFailedUpdate(t *testing.T) {
	s := newTestStore(t)
	logger, hook := logrustest.NewNullLogger()

	if _, err := ReceiveGoods(context.Background(), s, logger, "SOPB-0404", nil); err == nil {
		t.Fatal("expected error")
	}
	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.ErrorLevel {
		t.Fatalf("expected an error log entry, got %+v", entry)
	}
	if entry.Data["funcName"] != "ReceiveGoods" || entry.Data["data"] != "SOPB-0404" {
		t.Fatalf("log fields = %v", entry.Data)
	}
}
