package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMovementRequest body para POST /api/stock/movements.
// WarehouseID es la bodega afectada (origen en traslados);
// ToWarehouseID solo aplica a traslados.
type CreateMovementRequest struct {
	ProductID         string           `json:"product_id" validate:"required,uuid"`
	WarehouseID       string           `json:"warehouse_id" validate:"required,uuid"`
	ToWarehouseID     string           `json:"to_warehouse_id,omitempty"`
	MovementType      string           `json:"movement_type" validate:"required,oneof=IN OUT TRANSFER"`
	Quantity          decimal.Decimal  `json:"quantity"`
	Reason            string           `json:"reason" validate:"required"`
	UnitCost          *decimal.Decimal `json:"unit_cost,omitempty"`
	ReferenceDocument string           `json:"reference_document,omitempty"`
	Notes             string           `json:"notes,omitempty"`
}

// AdjustmentRequest body para POST /api/stock/adjustment: fija el stock de
// producto+bodega en una cantidad objetivo.
type AdjustmentRequest struct {
	ProductID   string          `json:"product_id" validate:"required,uuid"`
	WarehouseID string          `json:"warehouse_id" validate:"required,uuid"`
	NewQuantity decimal.Decimal `json:"new_quantity"`
	Notes       string          `json:"notes"`
}

// MovementResponse salida de un movimiento del ledger.
type MovementResponse struct {
	ID                string           `json:"id"`
	StockRecordID     string           `json:"stock_record_id"`
	MovementType      string           `json:"movement_type"`
	Quantity          decimal.Decimal  `json:"quantity"`
	ResultingBalance  decimal.Decimal  `json:"resulting_balance"`
	Reason            string           `json:"reason"`
	AccountID         string           `json:"account_id"`
	UnitCost          *decimal.Decimal `json:"unit_cost,omitempty"`
	ReferenceDocument string           `json:"reference_document,omitempty"`
	Notes             string           `json:"notes,omitempty"`
	FromWarehouseID   string           `json:"from_warehouse_id,omitempty"`
	ToWarehouseID     string           `json:"to_warehouse_id,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// MovementSummaryResponse agregado de movimientos en un rango de fechas.
type MovementSummaryResponse struct {
	TotalMovements int             `json:"total_movements"`
	TotalIn        decimal.Decimal `json:"total_in"`
	TotalOut       decimal.Decimal `json:"total_out"`
	TotalTransfers int             `json:"total_transfers"`
	ByType         map[string]int  `json:"by_type"`
	ByReason       map[string]int  `json:"by_reason"`
}

// StockRecordResponse salida del saldo de un producto en una bodega.
type StockRecordResponse struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	WarehouseID     string          `json:"warehouse_id"`
	CurrentQuantity decimal.Decimal `json:"current_quantity"`
	IsActive        bool            `json:"is_active"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// StockRecordListResponse lista paginada de saldos.
type StockRecordListResponse struct {
	Items []StockRecordResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// ReconcileResponse resultado de reconciliar un registro contra su historial.
type ReconcileResponse struct {
	StockRecordID string          `json:"stock_record_id"`
	Reconciled    bool            `json:"reconciled"`
	OldQuantity   decimal.Decimal `json:"old_quantity"`
	NewQuantity   decimal.Decimal `json:"new_quantity"`
	Difference    decimal.Decimal `json:"difference"`
}
