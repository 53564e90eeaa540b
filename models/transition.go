package models

type transition struct {
	from OrderStatus
	to   OrderStatus
}

// transitions is the order lifecycle. The value tells whether the move is a
// plain status change (true) or owned by an operation with side effects
// (conversion, goods receipt, payment).
var transitions = map[transition]bool{
	{OrderStatusRequested, OrderStatusSubmitted}: false,
	{OrderStatusDraft, OrderStatusSubmitted}:     true,
	{OrderStatusSubmitted, OrderStatusApproved}:  true,
	{OrderStatusSubmitted, OrderStatusRejected}:  true,
	{OrderStatusApproved, OrderStatusShipped}:    true,
	{OrderStatusShipped, OrderStatusReceived}:    false,
	{OrderStatusShipped, OrderStatusRejected}:    false,
	{OrderStatusReceived, OrderStatusInvoiced}:   true,
	{OrderStatusInvoiced, OrderStatusPaid}:       false,
}

func CanTransition(from, to OrderStatus) bool {
	_, ok := transitions[transition{from, to}]
	return ok
}

// IsManualTransition reports whether from -> to may go through UpdateOrderStatus.
func IsManualTransition(from, to OrderStatus) bool {
	return transitions[transition{from, to}]
}

// NextStatuses lists the statuses reachable from `from`.
func NextStatuses(from OrderStatus) []OrderStatus {
	var out []OrderStatus
	for _, st := range []OrderStatus{
		OrderStatusSubmitted, OrderStatusApproved, OrderStatusShipped, OrderStatusReceived,
		OrderStatusRejected, OrderStatusInvoiced, OrderStatusPaid,
	} {
		if CanTransition(from, st) {
			out = append(out, st)
		}
	}
	return out
}
