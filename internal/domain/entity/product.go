package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario (multi-bodega).
// Specifications es el JSON validado contra el template del producto;
// Price y Cost son montos en pesos sin decimales. Category y Template
// deben pertenecer a la misma empresa que el producto.
type Product struct {
	ID             string
	CompanyID      string
	CategoryID     string
	TemplateID     string
	Name           string
	SKU            string // único, normalizado a mayúsculas
	Barcode        string
	Price          decimal.Decimal
	Cost           decimal.Decimal
	UnitMeasure    string
	MinimumStock   decimal.Decimal
	Specifications json.RawMessage
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
