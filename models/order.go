package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mmdatafocus/procurement_backend/utils"
	"github.com/shopspring/decimal"
)

// DefaultRequestQty is the production lot added per click when no quantity is given.
const DefaultRequestQty = 10

const PendingSupplierName = "Pending Assignment"

// MaxLineQty caps the quantity of one order line, after duplicate lines are merged.
const MaxLineQty = 1_000_000

// Order is an SOPB, or a PPbb before Purchasing has converted it.
type Order struct {
	ID           string          `json:"id"`
	RequestId    string          `json:"request_id,omitempty"`
	Date         time.Time       `json:"date"`
	SupplierId   string          `json:"supplier_id"`
	SupplierName string          `json:"supplier_name"`
	Items        []OrderItem     `json:"items"`
	Status       OrderStatus     `json:"status"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Logs         []string        `json:"logs"`
	RequestedBy  string          `json:"requested_by,omitempty"`
}

type OrderItem struct {
	ItemId      string          `json:"item_id"`
	ItemName    string          `json:"item_name"`
	QtyOrdered  int             `json:"qty_ordered"`
	QtyReceived *int            `json:"qty_received,omitempty"`
	Price       decimal.Decimal `json:"price"`
}

type NewOrderLine struct {
	ItemId string `json:"item_id" validate:"required"`
	Qty    int    `json:"qty" validate:"gte=0,lte=1000000"`
}

type NewOrder struct {
	SupplierId    string         `json:"supplier_id" validate:"required"`
	FromRequestId string         `json:"from_request_id"`
	Lines         []NewOrderLine `json:"lines" validate:"dive"`
	// Draft keeps a directly created order for a later submit.
	Draft bool `json:"draft"`
}

// Clone deep-copies the order so callers cannot alias store state.
func (o Order) Clone() Order {
	c := o
	c.Items = make([]OrderItem, len(o.Items))
	for i, it := range o.Items {
		c.Items[i] = it
		if it.QtyReceived != nil {
			q := *it.QtyReceived
			c.Items[i].QtyReceived = &q
		}
	}
	c.Logs = append([]string(nil), o.Logs...)
	return c
}

func (o Order) hasStatus(statuses ...OrderStatus) bool {
	for _, st := range statuses {
		if o.Status == st {
			return true
		}
	}
	return false
}

// Line returns the order line for itemId.
func (o *Order) Line(itemId string) (*OrderItem, bool) {
	for i := range o.Items {
		if o.Items[i].ItemId == itemId {
			return &o.Items[i], true
		}
	}
	return nil, false
}

func (o *Order) AppendLog(msg string) {
	o.Logs = append(o.Logs, msg)
}

// Transition moves the order to status `to` if the transition table allows it.
func (o *Order) Transition(to OrderStatus) error {
	if o.Status.IsTerminal() {
		return fmt.Errorf("%w: %s is already %s", utils.ErrInvalidTransition, o.ID, o.Status)
	}
	if !CanTransition(o.Status, to) {
		return fmt.Errorf("%w: %s -> %s", utils.ErrInvalidTransition, o.Status, to)
	}
	o.Status = to
	return nil
}

func calculateTotal(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.QtyOrdered))))
	}
	return total
}

// mergeLines folds duplicate item lines together, the way the production cart does.
func mergeLines(lines []NewOrderLine, defaultQty int) ([]NewOrderLine, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: at least one item is required", utils.ErrInvalidInput)
	}
	merged := make([]NewOrderLine, 0, len(lines))
	index := make(map[string]int)
	for _, line := range lines {
		if err := utils.ValidateStruct(line); err != nil {
			return nil, err
		}
		if line.Qty == 0 {
			line.Qty = defaultQty
		}
		if line.Qty <= 0 {
			return nil, fmt.Errorf("%w: item %s needs a positive quantity", utils.ErrInvalidInput, line.ItemId)
		}
		if i, ok := index[line.ItemId]; ok {
			if merged[i].Qty > MaxLineQty-line.Qty {
				return nil, fmt.Errorf("%w: item %s exceeds %d units", utils.ErrInvalidInput, line.ItemId, MaxLineQty)
			}
			merged[i].Qty += line.Qty
			continue
		}
		index[line.ItemId] = len(merged)
		merged = append(merged, line)
	}
	return merged, nil
}

func buildItems(tx *Tx, lines []NewOrderLine) ([]OrderItem, error) {
	items := make([]OrderItem, 0, len(lines))
	for _, line := range lines {
		inv, ok := tx.InventoryItem(line.ItemId)
		if !ok {
			return nil, fmt.Errorf("item %s: %w", line.ItemId, utils.ErrorRecordNotFound)
		}
		items = append(items, OrderItem{
			ItemId:     inv.ID,
			ItemName:   inv.Name,
			QtyOrdered: line.Qty,
			Price:      inv.Price,
		})
	}
	return items, nil
}

// RequestPurchase records a Production purchase request (PPbb).
func (s *Store) RequestPurchase(ctx context.Context, lines []NewOrderLine) (*Order, error) {
	merged, err := mergeLines(lines, DefaultRequestQty)
	if err != nil {
		return nil, err
	}

	var created Order
	err = s.Update(ctx, func(tx *Tx) error {
		items, err := buildItems(tx, merged)
		if err != nil {
			return err
		}
		created = Order{
			ID:           tx.NextNumber(RequestSeries),
			Date:         tx.Now(),
			SupplierName: PendingSupplierName,
			Items:        items,
			Status:       OrderStatusRequested,
			TotalAmount:  calculateTotal(items),
			Logs:         []string{fmt.Sprintf("Purchase Request (PPbb) created by Production at %s", clock(tx.Now()))},
			RequestedBy:  RoleProduction.Department(),
		}
		tx.AppendOrder(created.Clone())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// CreateOrder issues an SOPB from Purchasing, either by converting a pending
// production request or from scratch.
func (s *Store) CreateOrder(ctx context.Context, input NewOrder) (*Order, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}

	var lines []NewOrderLine
	if input.FromRequestId == "" {
		merged, err := mergeLines(input.Lines, 0)
		if err != nil {
			return nil, err
		}
		lines = merged
	} else if input.Draft {
		return nil, fmt.Errorf("%w: a converted request is submitted immediately", utils.ErrInvalidInput)
	}

	var result Order
	err := s.Update(ctx, func(tx *Tx) error {
		supplier, ok := tx.Supplier(input.SupplierId)
		if !ok {
			return fmt.Errorf("supplier %s: %w", input.SupplierId, utils.ErrorRecordNotFound)
		}

		if input.FromRequestId != "" {
			order, err := tx.Order(input.FromRequestId)
			if err != nil {
				return err
			}
			if order.Status != OrderStatusRequested {
				return fmt.Errorf("%w: %s is %s, not a pending request", utils.ErrInvalidTransition, order.ID, order.Status)
			}
			if err := order.Transition(OrderStatusSubmitted); err != nil {
				return err
			}
			order.RequestId = order.ID
			order.ID = tx.NextNumber(OrderSeries)
			order.SupplierId = supplier.ID
			order.SupplierName = supplier.Name
			order.AppendLog(fmt.Sprintf("Converted to SOPB and Submitted by Purchasing to %s", supplier.Name))
			result = order.Clone()
			return nil
		}

		items, err := buildItems(tx, lines)
		if err != nil {
			return err
		}
		status := OrderStatusSubmitted
		logLine := fmt.Sprintf("Created and Submitted by Purchasing at %s", clock(tx.Now()))
		if input.Draft {
			status = OrderStatusDraft
			logLine = fmt.Sprintf("Draft created by Purchasing at %s", clock(tx.Now()))
		}
		result = Order{
			ID:           tx.NextNumber(OrderSeries),
			Date:         tx.Now(),
			SupplierId:   supplier.ID,
			SupplierName: supplier.Name,
			Items:        items,
			Status:       status,
			TotalAmount:  calculateTotal(items),
			Logs:         []string{logLine},
			RequestedBy:  RolePurchasing.Department(),
		}
		tx.AppendOrder(result.Clone())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateOrderStatus applies one of the side-effect free transitions
// (submit, approve, reject, ship, invoice).
func (s *Store) UpdateOrderStatus(ctx context.Context, id string, status OrderStatus, note string) (*Order, error) {
	var result Order
	err := s.Update(ctx, func(tx *Tx) error {
		order, err := tx.Order(id)
		if err != nil {
			return err
		}
		if !IsManualTransition(order.Status, status) {
			return fmt.Errorf("%w: %s -> %s cannot be set directly", utils.ErrInvalidTransition, order.Status, status)
		}
		if err := SetStatus(tx, order, status, note); err != nil {
			return err
		}
		result = order.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// SetStatus transitions order inside tx and writes the status-change log line.
func SetStatus(tx *Tx, order *Order, status OrderStatus, note string) error {
	if order == nil {
		return errors.New("order is nil")
	}
	if err := order.Transition(status); err != nil {
		return err
	}
	order.AppendLog(statusChangedLog(status, tx.Now(), note))
	return nil
}
