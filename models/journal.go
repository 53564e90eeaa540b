package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type JournalEntry struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	RefId       string          `json:"ref_id"` // NoFaktur
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// NewPaymentJournal books the settlement of a paid order.
func NewPaymentJournal(tx *Tx, order Order) JournalEntry {
	return JournalEntry{
		ID:          tx.NextNumber(JournalSeries),
		Date:        tx.Now(),
		RefId:       order.ID,
		Description: fmt.Sprintf("Payment for Order %s to %s", order.ID, order.SupplierName),
		Debit:       order.TotalAmount,
		Credit:      order.TotalAmount,
	}
}

// JournalsFor returns the journal entries referencing refId.
func (s *Store) JournalsFor(refId string) []JournalEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []JournalEntry
	for _, j := range s.st.journals {
		if j.RefId == refId {
			out = append(out, j)
		}
	}
	return out
}
