package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockStatus situação derivada do estoque de um item.
type StockStatus string

const (
	StockOut StockStatus = "out" // estoque zerado
	StockLow StockStatus = "low" // estoque igual ou abaixo do mínimo
	StockOK  StockStatus = "ok"
)

// InventoryItem item de estoque (peças e acessórios).
type InventoryItem struct {
	ID            string          `json:"id"`
	Name          string          `json:"name" validate:"required"`
	SKU           string          `json:"sku,omitempty"`
	Category      string          `json:"category,omitempty"`
	Compatibility string          `json:"compatibility,omitempty"`
	Price         decimal.Decimal `json:"price"`
	CurrentStock  int             `json:"currentStock" validate:"min=0"`
	MinimumStock  int             `json:"minimumStock" validate:"min=0"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// StockStatus deriva a situação: out (0), low (<= mínimo), ok (> mínimo).
func (i InventoryItem) StockStatus() StockStatus {
	switch {
	case i.CurrentStock <= 0:
		return StockOut
	case i.CurrentStock <= i.MinimumStock:
		return StockLow
	}
	return StockOK
}
