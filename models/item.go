package models

import "github.com/shopspring/decimal"

type Item struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type InventoryItem struct {
	Item
	Stock       int    `json:"stock"`
	SafetyStock int    `json:"safety_stock"`
	Unit        string `json:"unit"`
}

// IsLowStock flags items at or below their safety stock.
func (i InventoryItem) IsLowStock() bool {
	return i.Stock <= i.SafetyStock
}
