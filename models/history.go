package models

import (
	"fmt"
	"time"
)

func clock(t time.Time) string {
	return t.Format("15:04:05")
}

func statusChangedLog(status OrderStatus, at time.Time, note string) string {
	msg := fmt.Sprintf("Status changed to %s at %s", status, clock(at))
	if note != "" {
		msg += fmt.Sprintf(" (%s)", note)
	}
	return msg
}

// ReceiptLog is the warehouse check line appended on goods receipt.
func ReceiptLog(status OrderStatus) string {
	return fmt.Sprintf("Goods received by Warehouse. Check Result: %s", status)
}

// Notes written next to the status change by each department's action.
const (
	NoteSubmitted = "Submitted by Purchasing"
	NoteApproved  = "Approved by Accounting"
	NoteRejected  = "Rejected by Accounting"
	NoteShipped   = "Shipped by Supplier"
	NoteInvoiced  = "Invoice Sent by Supplier"
)
