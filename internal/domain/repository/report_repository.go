package repository

import "github.com/shopspring/decimal"

// ValuationItem valorización del stock de un producto (cantidad x costo).
type ValuationItem struct {
	ProductID   string
	SKU         string
	ProductName string
	Warehouse   string
	Quantity    decimal.Decimal
	UnitCost    decimal.Decimal
	TotalValue  decimal.Decimal
}

// StockAlert producto bajo su stock mínimo o agotado.
type StockAlert struct {
	ProductID    string
	SKU          string
	ProductName  string
	TotalStock   decimal.Decimal
	MinimumStock decimal.Decimal
	AlertType    string // low_stock | out_of_stock
}

// CategoryAnalysisRow agregado de stock y valor por categoría.
type CategoryAnalysisRow struct {
	CategoryID   string
	CategoryName string
	ProductCount int
	TotalStock   decimal.Decimal
	TotalValue   decimal.Decimal
}

// TopProductRow producto ordenado por valor de inventario.
type TopProductRow struct {
	ProductID   string
	SKU         string
	ProductName string
	TotalStock  decimal.Decimal
	StockValue  decimal.Decimal
}

// ReportRepository consultas de reportería sobre el inventario.
// Son lecturas agregadas; la fuente de verdad sigue siendo StockRecord.
type ReportRepository interface {
	Valuation(companyID, warehouseID string) ([]ValuationItem, error)
	StockAlerts(companyID string) ([]StockAlert, error)
	CategoryAnalysis(companyID string) ([]CategoryAnalysisRow, error)
	TopProducts(companyID string, limit int) ([]TopProductRow, error)
}
