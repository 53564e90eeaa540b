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

// PayInvoice settles an invoiced order and books the payment journal in the
// same update, so a Paid order always has its journal entry.
func PayInvoice(ctx context.Context, store *models.Store, logger *logrus.Logger, orderId string) (*models.Order, *models.JournalEntry, error) {
	ctx, span := config.Tracer.Start(ctx, "workflow.PayInvoice")
	defer span.End()
	span.SetAttributes(attribute.String("order.id", orderId))

	var (
		order   models.Order
		journal models.JournalEntry
	)
	err := store.Update(ctx, func(tx *models.Tx) error {
		o, err := tx.Order(orderId)
		if err != nil {
			return err
		}
		if o.Status != models.OrderStatusInvoiced {
			return fmt.Errorf("%w: %s is %s, only invoiced orders can be paid", utils.ErrInvalidTransition, o.ID, o.Status)
		}
		if err := models.SetStatus(tx, o, models.OrderStatusPaid, ""); err != nil {
			return err
		}
		journal = models.NewPaymentJournal(tx, *o)
		tx.AppendJournal(journal)
		order = o.Clone()
		return nil
	})
	if err != nil {
		span.RecordError(err)
		config.LogError(logger, "paymentWorkflow.go", "PayInvoice", "store.Update", orderId, err)
		return nil, nil, err
	}

	span.SetAttributes(attribute.String("journal.id", journal.ID))
	logger.WithFields(logrus.Fields{
		"field":      "PayInvoice",
		"order_id":   order.ID,
		"journal_id": journal.ID,
		"amount":     order.TotalAmount.String(),
	}).Info("invoice paid")
	return &order, &journal, nil
}
