package models

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mmdatafocus/procurement_backend/utils"
)

// NumberSeries describes how document numbers of one kind are rendered.
type NumberSeries struct {
	Prefix string
	Width  int
}

var (
	RequestSeries  = NumberSeries{Prefix: "PPbb-", Width: 5}
	OrderSeries    = NumberSeries{Prefix: "SOPB-", Width: 4}
	JournalSeries  = NumberSeries{Prefix: "JRN-", Width: 4}
	SupplierSeries = NumberSeries{Prefix: "SUP", Width: 3}
)

func (n NumberSeries) format(seq int) string {
	return fmt.Sprintf("%s%0*d", n.Prefix, n.Width, seq)
}

// highest returns the sequence new supplier ids continue from: the largest
// number already used in this series, or the supplier count if that is larger.
func (n NumberSeries) highest(suppliers []Supplier) int {
	seq := len(suppliers)
	for _, s := range suppliers {
		num, ok := strings.CutPrefix(s.ID, n.Prefix)
		if !ok {
			continue
		}
		if v, err := strconv.Atoi(num); err == nil && v > seq {
			seq = v
		}
	}
	return seq
}

type state struct {
	orders    []Order
	journals  []JournalEntry
	inventory []InventoryItem
	suppliers []Supplier
	sequences map[string]int
}

func (st *state) clone() *state {
	c := &state{
		orders:    make([]Order, len(st.orders)),
		journals:  append([]JournalEntry(nil), st.journals...),
		inventory: append([]InventoryItem(nil), st.inventory...),
		suppliers: append([]Supplier(nil), st.suppliers...),
		sequences: make(map[string]int, len(st.sequences)),
	}
	for i, o := range st.orders {
		c.orders[i] = o.Clone()
	}
	for k, v := range st.sequences {
		c.sequences[k] = v
	}
	return c
}

// Store keeps the whole procurement state in process memory.
// Every mutation runs through Update, which works on a copy and swaps it in
// only when the callback succeeds.
type Store struct {
	mu          sync.RWMutex
	st          *state
	catalog     Catalog
	role        Role
	now         func() time.Time
	phoneRegion string
}

type StoreOption func(*Store)

func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

func WithPhoneRegion(region string) StoreOption {
	return func(s *Store) {
		if region != "" {
			s.phoneRegion = region
		}
	}
}

func NewStore(catalog Catalog, opts ...StoreOption) *Store {
	s := &Store{
		catalog:     catalog.clone(),
		role:        RoleDashboard,
		now:         time.Now,
		phoneRegion: utils.CountryCode,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.st = &state{
		inventory: append([]InventoryItem(nil), catalog.Items...),
		suppliers: append([]Supplier(nil), catalog.Suppliers...),
		sequences: map[string]int{
			SupplierSeries.Prefix: SupplierSeries.highest(catalog.Suppliers),
		},
	}
	return s
}

// Tx is the mutable view handed to Update callbacks. Pointers it returns are
// only valid inside the callback.
type Tx struct {
	st  *state
	now time.Time
}

func (tx *Tx) Now() time.Time { return tx.now }

func (tx *Tx) NextNumber(series NumberSeries) string {
	tx.st.sequences[series.Prefix]++
	return series.format(tx.st.sequences[series.Prefix])
}

func (tx *Tx) Order(id string) (*Order, error) {
	for i := range tx.st.orders {
		if tx.st.orders[i].ID == id {
			return &tx.st.orders[i], nil
		}
	}
	return nil, fmt.Errorf("order %s: %w", id, utils.ErrorRecordNotFound)
}

func (tx *Tx) InventoryItem(id string) (*InventoryItem, bool) {
	for i := range tx.st.inventory {
		if tx.st.inventory[i].ID == id {
			return &tx.st.inventory[i], true
		}
	}
	return nil, false
}

func (tx *Tx) Supplier(id string) (*Supplier, bool) {
	for i := range tx.st.suppliers {
		if tx.st.suppliers[i].ID == id {
			return &tx.st.suppliers[i], true
		}
	}
	return nil, false
}

func (tx *Tx) AppendOrder(o Order) {
	tx.st.orders = append(tx.st.orders, o)
}

func (tx *Tx) AppendJournal(j JournalEntry) {
	tx.st.journals = append(tx.st.journals, j)
}

// Update applies fn atomically: either every change fn makes is kept or none.
func (s *Store) Update(ctx context.Context, fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	work := s.st.clone()
	if err := fn(&Tx{st: work, now: s.now()}); err != nil {
		return err
	}
	s.st = work
	return nil
}

// Reset clears orders and journals and restores the seeded inventory.
// Suppliers and document sequences survive so numbers are never reused.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.orders = nil
	s.st.journals = nil
	s.st.inventory = append([]InventoryItem(nil), s.catalog.Items...)
}

func (s *Store) Role() Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

func (s *Store) SetRole(role Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.role = role
}

func (s *Store) Journals() []JournalEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]JournalEntry(nil), s.st.journals...)
}

func (s *Store) Inventory() []InventoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]InventoryItem(nil), s.st.inventory...)
}

func (s *Store) InventoryItem(id string) (*InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.st.inventory {
		if item.ID == id {
			return &item, nil
		}
	}
	return nil, fmt.Errorf("item %s: %w", id, utils.ErrorRecordNotFound)
}

// Orders lists orders in creation order, optionally limited to the given statuses.
func (s *Store) Orders(statuses ...OrderStatus) []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.ordersWith(statuses...)
}

// caller holds s.mu
func (st *state) ordersWith(statuses ...OrderStatus) []Order {
	out := make([]Order, 0, len(st.orders))
	for _, o := range st.orders {
		if len(statuses) > 0 && !o.hasStatus(statuses...) {
			continue
		}
		out = append(out, o.Clone())
	}
	return out
}

// Snapshot is a consistent copy of orders and journals taken under one lock.
type Snapshot struct {
	Orders   []Order
	Journals []JournalEntry
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Orders:   s.st.ordersWith(),
		Journals: append([]JournalEntry(nil), s.st.journals...),
	}
}

func (s *Store) Order(id string) (*Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.st.orders {
		if o.ID == id {
			c := o.Clone()
			return &c, nil
		}
	}
	return nil, fmt.Errorf("order %s: %w", id, utils.ErrorRecordNotFound)
}
