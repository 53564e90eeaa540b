package workflow

import (
	"context"
	"fmt"

	"github.com/mmdatafocus/procurement_backend/config"
	"github.com/mmdatafocus/procurement_backend/models"
	"github.com/mmdatafocus/procurement_backend/utils"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type ReceivedLine struct {
	ItemId      string `json:"item_id" validate:"required"`
	QtyReceived int    `json:"qty_received" validate:"gte=0,lte=1000000"`
}

// ReceiveGoods checks a shipped order against the delivery note (Surat Jalan).
// A full match marks the order Received and books the quantities into
// inventory; anything else marks it Rejected and leaves stock untouched.
func ReceiveGoods(ctx context.Context, store *models.Store, logger *logrus.Logger, orderId string, received []ReceivedLine) (*models.Order, error) {
	ctx, span := config.Tracer.Start(ctx, "workflow.ReceiveGoods")
	defer span.End()
	span.SetAttributes(attribute.String("order.id", orderId))

	receivedQty := make(map[string]int, len(received))
	for _, line := range received {
		if err := utils.ValidateStruct(line); err != nil {
			return nil, err
		}
		if _, dup := receivedQty[line.ItemId]; dup {
			return nil, fmt.Errorf("%w: item %s listed twice", utils.ErrInvalidInput, line.ItemId)
		}
		receivedQty[line.ItemId] = line.QtyReceived
	}

	var result models.Order
	err := store.Update(ctx, func(tx *models.Tx) error {
		order, err := tx.Order(orderId)
		if err != nil {
			return err
		}
		if order.Status != models.OrderStatusShipped {
			return fmt.Errorf("%w: %s is %s, only shipped orders can be received", utils.ErrInvalidTransition, order.ID, order.Status)
		}

		status := models.OrderStatusReceived
		if !matchesDelivery(order, receivedQty) {
			status = models.OrderStatusRejected
		}

		for i := range order.Items {
			qty := receivedQty[order.Items[i].ItemId]
			order.Items[i].QtyReceived = &qty
		}
		if err := order.Transition(status); err != nil {
			return err
		}
		order.AppendLog(models.ReceiptLog(status))

		if status == models.OrderStatusReceived {
			for _, line := range received {
				inv, ok := tx.InventoryItem(line.ItemId)
				if !ok {
					logger.WithFields(logrus.Fields{
						"field":    "ReceiveGoods",
						"order_id": order.ID,
						"item_id":  line.ItemId,
					}).Warn("received item is not tracked in inventory; stock not updated")
					continue
				}
				inv.Stock += line.QtyReceived
			}
		}

		result = order.Clone()
		return nil
	})
	if err != nil {
		span.RecordError(err)
		config.LogError(logger, "receiveGoodsWorkflow.go", "ReceiveGoods", "store.Update", orderId, err)
		return nil, err
	}

	span.SetAttributes(attribute.String("order.status", string(result.Status)))
	logger.WithFields(logrus.Fields{
		"field":    "ReceiveGoods",
		"order_id": result.ID,
		"status":   result.Status,
	}).Info("goods receipt checked")
	return &result, nil
}

// matchesDelivery requires every received line to match an ordered line
// exactly, and every ordered line to be accounted for.
func matchesDelivery(order *models.Order, receivedQty map[string]int) bool {
	for itemId, qty := range receivedQty {
		line, ok := order.Line(itemId)
		if !ok || line.QtyOrdered != qty {
			return false
		}
	}
	for _, line := range order.Items {
		if _, ok := receivedQty[line.ItemId]; !ok && line.QtyOrdered != 0 {
			return false
		}
	}
	return true
}
