package main

import (
	"context"
	"fmt"

	"github.com/mmdatafocus/procurement_backend/models"
	"github.com/mmdatafocus/procurement_backend/workflow"
	"github.com/sirupsen/logrus"
)

type scenarioResult struct {
	Orders    []models.Order         `json:"orders"`
	Journals  []models.JournalEntry  `json:"journals"`
	Inventory []models.InventoryItem `json:"inventory"`
	Dashboard models.DashboardStats  `json:"dashboard"`
}

// runScenario walks one purchase through every department: a production
// request, conversion to an SOPB, approval, shipment and receipt. When the
// receipt matches, the order is invoiced and paid. mismatch short-delivers
// the first line so the warehouse rejects the order.
func runScenario(ctx context.Context, store *models.Store, logger *logrus.Logger, supplierId string, mismatch bool) (*scenarioResult, error) {
	request, err := store.RequestPurchase(ctx, []models.NewOrderLine{
		{ItemId: "RAW01"},
		{ItemId: "RAW02", Qty: 5},
	})
	if err != nil {
		return nil, fmt.Errorf("request purchase: %w", err)
	}

	order, err := store.CreateOrder(ctx, models.NewOrder{SupplierId: supplierId, FromRequestId: request.ID})
	if err != nil {
		return nil, fmt.Errorf("convert request: %w", err)
	}

	for _, step := range []struct {
		status models.OrderStatus
		note   string
	}{
		{models.OrderStatusApproved, models.NoteApproved},
		{models.OrderStatusShipped, models.NoteShipped},
	} {
		if order, err = store.UpdateOrderStatus(ctx, order.ID, step.status, step.note); err != nil {
			return nil, fmt.Errorf("%s: %w", step.status, err)
		}
	}

	received := make([]workflow.ReceivedLine, 0, len(order.Items))
	for i, it := range order.Items {
		qty := it.QtyOrdered
		if mismatch && i == 0 {
			qty--
		}
		received = append(received, workflow.ReceivedLine{ItemId: it.ItemId, QtyReceived: qty})
	}
	if order, err = workflow.ReceiveGoods(ctx, store, logger, order.ID, received); err != nil {
		return nil, fmt.Errorf("receive goods: %w", err)
	}

	if order.Status == models.OrderStatusReceived {
		if order, err = store.UpdateOrderStatus(ctx, order.ID, models.OrderStatusInvoiced, models.NoteInvoiced); err != nil {
			return nil, fmt.Errorf("invoice: %w", err)
		}
		if _, _, err = workflow.PayInvoice(ctx, store, logger, order.ID); err != nil {
			return nil, fmt.Errorf("pay invoice: %w", err)
		}
	}

	snap := store.Snapshot()
	return &scenarioResult{
		Orders:    snap.Orders,
		Journals:  snap.Journals,
		Inventory: store.Inventory(),
		Dashboard: store.Dashboard(),
	}, nil
}
