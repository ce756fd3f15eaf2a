package dto

import "github.com/shopspring/decimal"

// ValuationRowResponse valorización del stock de un producto en una bodega.
type ValuationRowResponse struct {
	ProductID   string          `json:"product_id"`
	SKU         string          `json:"sku"`
	ProductName string          `json:"product_name"`
	Warehouse   string          `json:"warehouse"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	TotalValue  decimal.Decimal `json:"total_value"`
}

// ValuationReportResponse reporte de valorización con total general.
type ValuationReportResponse struct {
	Items      []ValuationRowResponse `json:"items"`
	GrandTotal decimal.Decimal        `json:"grand_total"`
}

// StockAlertResponse producto bajo su mínimo o agotado.
type StockAlertResponse struct {
	ProductID    string          `json:"product_id"`
	SKU          string          `json:"sku"`
	ProductName  string          `json:"product_name"`
	TotalStock   decimal.Decimal `json:"total_stock"`
	MinimumStock decimal.Decimal `json:"minimum_stock"`
	AlertType    string          `json:"alert_type"` // low_stock | out_of_stock
}

// CategoryAnalysisResponse agregado de stock y valor por categoría.
type CategoryAnalysisResponse struct {
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	ProductCount int             `json:"product_count"`
	TotalStock   decimal.Decimal `json:"total_stock"`
	TotalValue   decimal.Decimal `json:"total_value"`
}

// TopProductResponse producto ordenado por valor de inventario.
type TopProductResponse struct {
	ProductID   string          `json:"product_id"`
	SKU         string          `json:"sku"`
	ProductName string          `json:"product_name"`
	TotalStock  decimal.Decimal `json:"total_stock"`
	StockValue  decimal.Decimal `json:"stock_value"`
}
