package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockRecord es el saldo autoritativo de un producto en una bodega
// (único por producto+bodega). CurrentQuantity nunca es negativo y lo
// muta únicamente el ledger de movimientos, jamás la API directamente.
type StockRecord struct {
	ID              string
	ProductID       string
	WarehouseID     string
	CurrentQuantity decimal.Decimal
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
